package core

import (
	"encoding/json"

	sdkmath "cosmossdk.io/math"
)

// ActionType action type
type ActionType int

const (
	// ActionTypeDeposit deposit into plain supply
	ActionTypeDeposit ActionType = iota
	// ActionTypeWithdraw withdraw from plain supply
	ActionTypeWithdraw
	// ActionTypeIncreaseCollateral move plain supply into position collateral
	ActionTypeIncreaseCollateral
	// ActionTypeDecreaseCollateral move position collateral back to plain supply
	ActionTypeDecreaseCollateral
	// ActionTypeBorrow borrow against collateral
	ActionTypeBorrow
	// ActionTypeRepay repay outstanding debt
	ActionTypeRepay
	// ActionTypeOpenMargin open a margin position
	ActionTypeOpenMargin
	// ActionTypeCloseMargin close a margin position
	ActionTypeCloseMargin
)

var actionNames = map[ActionType]string{
	ActionTypeDeposit:            "deposit",
	ActionTypeWithdraw:           "withdraw",
	ActionTypeIncreaseCollateral: "increase_collateral",
	ActionTypeDecreaseCollateral: "decrease_collateral",
	ActionTypeBorrow:             "borrow",
	ActionTypeRepay:              "repay",
	ActionTypeOpenMargin:         "open_margin",
	ActionTypeCloseMargin:        "close_margin",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return "unknown"
}

// RegularAction one ordinary borrow/lend step. Exactly one semantic per
// ActionType; the executor dispatches on Type exhaustively.
type RegularAction struct {
	Type    ActionType  `json:"type"`
	TokenID string      `json:"token_id"`
	Amount  sdkmath.Int `json:"amount"`
	// PosID defaults to REGULAR when empty
	PosID string `json:"pos_id,omitempty"`
}

// MarginAction one margin-trading step.
type MarginAction struct {
	Type  ActionType `json:"type"`
	PosID string     `json:"pos_id"`

	DebtTokenID   string      `json:"debt_token_id"`
	DebtAmount    sdkmath.Int `json:"debt_amount"`
	PositionToken string      `json:"position_token_id"`
	// MinPositionAmount slippage floor on the traded-into amount
	MinPositionAmount sdkmath.Int `json:"min_position_amount"`

	MarginTokenID string      `json:"margin_token_id"`
	MarginAmount  sdkmath.Int `json:"margin_amount"`

	DexID string `json:"dex_id"`
}

// BatchKind batch kind
type BatchKind string

const (
	// BatchKindExecute ordinary action list
	BatchKindExecute BatchKind = "execute"
	// BatchKindMarginExecute margin action list
	BatchKindMarginExecute BatchKind = "margin_execute"
)

// BatchMessage a tagged union of Execute or MarginExecute; exactly one is
// processed per call.
type BatchMessage struct {
	Kind    BatchKind       `json:"kind"`
	Execute []RegularAction `json:"actions,omitempty"`
	Margin  []MarginAction  `json:"margin_actions,omitempty"`
}

// MarshalBatchMessage encodes the message for the batch record.
func MarshalBatchMessage(m *BatchMessage) ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalBatchMessage decodes a batch record payload.
func UnmarshalBatchMessage(data []byte) (*BatchMessage, error) {
	var m BatchMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
