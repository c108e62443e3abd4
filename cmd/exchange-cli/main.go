package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "exchange-cli",
	Short: "Fill and cancel signed orders on the exchange contract",
	Long: `exchange-cli reads signed orders from a JSON file and sends fill,
batchFill or cancel transactions to the exchange contract. Set DRY_RUN=true
to log the formatted calls without sending them.`,
	SilenceUsage: true,
}

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a single order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, opFill)
	},
}

var batchFillCmd = &cobra.Command{
	Use:   "batch-fill",
	Short: "Fill every order in the file in one transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, opBatchFill)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel part or all of a single order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, opCancel)
	},
}

func main() {
	rootCmd.PersistentFlags().String("env", "", "Path to a .env file. Defaults to .env in the current directory.")
	rootCmd.PersistentFlags().StringP("orders", "o", "", "JSON file holding one order or an array of orders. Unsigned orders without an expiration expire DEFAULT_TTL_SECONDS from now; signed orders are sent as is. This flag is required.")
	rootCmd.PersistentFlags().String("from", "", "Caller address. Defaults to the address of PRIVATE_KEY.")
	rootCmd.PersistentFlags().Bool("wait", false, "Wait for the transaction to be mined.")
	rootCmd.MarkPersistentFlagRequired("orders")

	fillCmd.Flags().StringP("amount", "a", "", "Maker amount to fill in token units, e.g. 1.5. Defaults to the full order.")
	fillCmd.Flags().String("sig", "", "Hex [R || S || V] signature overriding the one in the order file.")
	batchFillCmd.Flags().StringSlice("amounts", nil, "Comma separated maker amounts, one per order. Defaults to the full orders.")
	cancelCmd.Flags().StringP("amount", "a", "", "Maker amount to cancel in token units. Defaults to the full order.")

	rootCmd.AddCommand(fillCmd, batchFillCmd, cancelCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("exchange-cli: %v", err)
	}
}
