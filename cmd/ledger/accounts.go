// cmd/ledger/accounts.go
//
// 帳本層級與查詢指令：reset、check、show、last、create、search、export、import。

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledger/internal/bank"
	"ledger/internal/search"
	"ledger/internal/storage"
)

func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Recreate the data file with the bank account and seed accounts from config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bankAcct, seed := a.cfg.Fixture()
			b, err := bank.Init(a.cfg.DataFile, a.cfg.Limits, bankAcct, seed, bank.WithLogger(a.log))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s: %d accounts\n", a.cfg.DataFile, b.Live())
			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Scan the whole data file for corrupt or out-of-range records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open()
			if err != nil {
				return err
			}
			if err := b.IntegrityCheck(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d accounts\n", b.Live())
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NUMBER",
		Short: "Print one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			b, err := a.open()
			if err != nil {
				return err
			}
			acct, err := b.Get(n)
			if err != nil {
				return fmt.Errorf("account %d: %w", n, err)
			}
			writeAccount(cmd.OutOrStdout(), acct)
			return nil
		},
	}
}

func (a *app) lastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Print the most recently created account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open()
			if err != nil {
				return err
			}
			acct, err := b.Last()
			if err != nil {
				return err
			}
			writeAccount(cmd.OutOrStdout(), acct)
			return nil
		},
	}
}

func (a *app) createCmd() *cobra.Command {
	var (
		acct    bank.Account
		balance string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseAmount(balance)
			if err != nil {
				return err
			}
			acct.Balance = amt
			b, err := a.open()
			if err != nil {
				return err
			}
			n, err := b.Create(acct)
			if err != nil {
				return err
			}
			created, err := b.Get(n)
			if err != nil {
				return err
			}
			writeAccount(cmd.OutOrStdout(), created)
			return nil
		},
	}
	cmd.Flags().StringVar(&acct.Name, "name", "", "first name")
	cmd.Flags().StringVar(&acct.Surname, "surname", "", "surname")
	cmd.Flags().StringVar(&acct.Address, "address", "", "address")
	cmd.Flags().StringVar(&acct.NationalID, "id", "", "national id")
	cmd.Flags().StringVar(&balance, "balance", "0", "initial balance")
	cmd.Flags().Float32Var(&acct.InterestRate, "rate", 0, "loan interest rate (0..1)")
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var p search.Pattern
	cmd := &cobra.Command{
		Use:   "search [FIELD VALUE]",
		Short: "List accounts whose fields start with the given prefixes",
		Long: `Search matches field prefixes; all given flags must match.
FIELD VALUE is shorthand for a single field (name, surname, address, id).`,
		Args: cobra.MatchAll(cobra.RangeArgs(0, 2), func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("missing value for field %q", args[0])
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				fp, err := search.ByField(search.Field(args[0]), args[1])
				if err != nil {
					return err
				}
				p = fp
			}
			if p.Empty() {
				return fmt.Errorf("no search pattern given")
			}
			b, err := a.open()
			if err != nil {
				return err
			}
			for acct, err := range b.Search(p) {
				if err != nil {
					return err
				}
				writeAccount(cmd.OutOrStdout(), acct)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "name prefix")
	cmd.Flags().StringVar(&p.Surname, "surname", "", "surname prefix")
	cmd.Flags().StringVar(&p.Address, "address", "", "address prefix")
	cmd.Flags().StringVar(&p.NationalID, "id", "", "national id prefix")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export PATH",
		Short: "Write every account to a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open()
			if err != nil {
				return err
			}
			snap, err := b.Snapshot()
			if err != nil {
				return err
			}
			if err := storage.SaveSnapshot(args[0], snap); err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d accounts to %s\n", len(snap.Accounts), args[0])
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH",
		Short: "Recreate the data file from a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := storage.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			b, err := bank.Import(a.cfg.DataFile, a.cfg.Limits, snap, bank.WithLogger(a.log))
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d accounts into %s\n", b.Live(), a.cfg.DataFile)
			return nil
		},
	}
}
