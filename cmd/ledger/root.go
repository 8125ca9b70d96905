// cmd/ledger/root.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ledger/internal/bank"
	"ledger/internal/config"
	"ledger/internal/logging"
)

// app 為單次指令執行期間共用的狀態，由 PersistentPreRunE 填入。
type app struct {
	cfgPath  string
	dataFile string
	verbose  bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ledger",
		Short: "Fixed-record bank account ledger",
		Long: `ledger manages bank accounts stored as fixed-size records in a single data file.

Each account lives at the slot matching its number; slot 1 is the bank's
reserve. Every command performs one operation and exits.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", config.DefaultPath, "config file")
	root.PersistentFlags().StringVarP(&a.dataFile, "data", "d", "", "data file (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.resetCmd(),
		a.checkCmd(),
		a.showCmd(),
		a.lastCmd(),
		a.createCmd(),
		a.depositCmd(),
		a.withdrawCmd(),
		a.borrowCmd(),
		a.repayCmd(),
		a.transferCmd(),
		a.interestCmd(),
		a.searchCmd(),
		a.exportCmd(),
		a.importCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.dataFile != "" {
		cfg.DataFile = a.dataFile
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.cfgPath, err)
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.log = log.With(zap.String("cmd", cmd.Name()))
	a.log.Debug("config loaded", zap.String("config", a.cfgPath), zap.String("data", cfg.DataFile))
	return nil
}

// open 開啟設定中的資料檔。
func (a *app) open() (*bank.Bank, error) {
	b, err := bank.Open(a.cfg.DataFile, a.cfg.Limits, bank.WithLogger(a.log))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.cfg.DataFile, err)
	}
	return b, nil
}
