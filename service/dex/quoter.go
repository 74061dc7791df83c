package dex

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/pkg/resthttp"
)

type quoteResp struct {
	AmountOut string `json:"amount_out"`
}

type restQuoter struct {
	endpoints map[string]string
}

// New new rest-backed dex quoter. The swap math lives on the dex side; only
// the quoted output amount is consumed here.
func New(endpoints map[string]string) core.DexQuoter {
	return &restQuoter{endpoints: endpoints}
}

func (q *restQuoter) QuoteAmountOut(ctx context.Context, dexID, tokenIn, tokenOut string, amountIn sdkmath.Int) (sdkmath.Int, error) {
	endpoint, ok := q.endpoints[dexID]
	if !ok {
		return sdkmath.ZeroInt(), core.ErrDexNotRegistered
	}

	url := fmt.Sprintf("%s/api/quote?token_in=%s&token_out=%s&amount_in=%s", endpoint, tokenIn, tokenOut, amountIn.String())
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}

	var quote quoteResp
	if err := resthttp.ParseResponse(resp, &quote); err != nil {
		return sdkmath.ZeroInt(), err
	}

	out, ok := sdkmath.NewIntFromString(quote.AmountOut)
	if !ok {
		return sdkmath.ZeroInt(), fmt.Errorf("bad quote amount: %q", quote.AmountOut)
	}

	return out, nil
}
