package cmd

import (
	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/burrowHQ/burrowland-sub002/core"
)

var addAssetCmd = &cobra.Command{
	Use:     "add-asset",
	Aliases: []string{"aa"},
	Short:   "register a lendable asset",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		tokenID, err := cmd.Flags().GetString("token")
		if err != nil || tokenID == "" {
			panic("invalid token")
		}

		assetCfg := core.AssetConfig{
			CanDeposit:         mustBool(cmd, "can-deposit"),
			CanWithdraw:        mustBool(cmd, "can-withdraw"),
			CanUseAsCollateral: mustBool(cmd, "can-collateral"),
			CanBorrow:          mustBool(cmd, "can-borrow"),
			VolatilityRatio:    mustUint64(cmd, "volatility"),
			BaseRate:           mustDecimal(cmd, "base-rate"),
			Multiplier:         mustDecimal(cmd, "multiplier"),
			JumpMultiplier:     mustDecimal(cmd, "jump-multiplier"),
			Kink:               mustDecimal(cmd, "kink"),
			ReserveFactor:      mustDecimal(cmd, "reserve-factor"),
		}

		if v := mustString(cmd, "supplied-limit"); v != "" {
			assetCfg.SuppliedLimit = mustInt(v)
		}
		if v := mustString(cmd, "borrowed-limit"); v != "" {
			assetCfg.BorrowedLimit = mustInt(v)
		}
		if v := mustString(cmd, "min-borrowed"); v != "" {
			assetCfg.MinBorrowedAmount = mustInt(v)
		}

		database := provideDatabase()
		defer database.Close()

		assetStore := provideAssetStore(database)
		if err := database.Tx(func(tx *db.DB) error {
			return assetStore.Save(ctx, tx, core.NewAsset(tokenID, assetCfg))
		}); err != nil {
			cmd.PrintErrln("save asset error:", err)
			return
		}

		cmd.Println("asset registered:", tokenID)
	},
}

func mustString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(err)
	}
	return v
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(err)
	}
	return v
}

func mustUint64(cmd *cobra.Command, name string) uint64 {
	v, err := cmd.Flags().GetUint64(name)
	if err != nil {
		panic(err)
	}
	return v
}

func mustDecimal(cmd *cobra.Command, name string) decimal.Decimal {
	v, err := decimal.NewFromString(mustString(cmd, name))
	if err != nil {
		panic(err)
	}
	return v
}

func mustInt(v string) *sdkmath.Int {
	out, ok := sdkmath.NewIntFromString(v)
	if !ok {
		panic("invalid integer: " + v)
	}
	return &out
}

func init() {
	rootCmd.AddCommand(addAssetCmd)

	addAssetCmd.Flags().String("token", "", "token id")
	addAssetCmd.Flags().Bool("can-deposit", true, "allow deposits")
	addAssetCmd.Flags().Bool("can-withdraw", true, "allow withdrawals")
	addAssetCmd.Flags().Bool("can-collateral", false, "allow use as collateral")
	addAssetCmd.Flags().Bool("can-borrow", false, "allow borrowing")
	addAssetCmd.Flags().Uint64("volatility", 9500, "volatility ratio in bps")
	addAssetCmd.Flags().String("base-rate", "0", "interest base rate per year")
	addAssetCmd.Flags().String("multiplier", "0", "interest slope below the kink")
	addAssetCmd.Flags().String("jump-multiplier", "0", "interest slope above the kink")
	addAssetCmd.Flags().String("kink", "0.8", "utilization kink")
	addAssetCmd.Flags().String("reserve-factor", "0", "interest share kept as reserve")
	addAssetCmd.Flags().String("supplied-limit", "", "supplied balance cap")
	addAssetCmd.Flags().String("borrowed-limit", "", "borrowed balance cap")
	addAssetCmd.Flags().String("min-borrowed", "", "minimum borrow amount")
}
