// cmd/ledger/money.go
//
// 會改變餘額的指令。每個指令成功後印出變動後的帳戶。

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledger/internal/bank"
)

// amountOp 為 deposit/withdraw/borrow/repay 共用的簽名。
type amountOp func(b *bank.Bank, n uint32, amt int32) (bank.Account, error)

func (a *app) amountCmd(use, short string, op amountOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NUMBER AMOUNT",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			amt, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			b, err := a.open()
			if err != nil {
				return err
			}
			acct, err := op(b, n, amt)
			if err != nil {
				return fmt.Errorf("%s %d: %w", use, n, err)
			}
			writeAccount(cmd.OutOrStdout(), acct)
			return nil
		},
	}
}

func (a *app) depositCmd() *cobra.Command {
	return a.amountCmd("deposit", "Add funds to an account", (*bank.Bank).Deposit)
}

func (a *app) withdrawCmd() *cobra.Command {
	return a.amountCmd("withdraw", "Take funds from an account", (*bank.Bank).Withdraw)
}

func (a *app) borrowCmd() *cobra.Command {
	return a.amountCmd("borrow", "Lend from the bank reserve to an account", (*bank.Bank).Borrow)
}

func (a *app) repayCmd() *cobra.Command {
	return a.amountCmd("repay", "Pay part of an account's loan back to the bank", (*bank.Bank).Repay)
}

func (a *app) transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer FROM TO AMOUNT",
		Short: "Move funds between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			to, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			amt, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			b, err := a.open()
			if err != nil {
				return err
			}
			if err := b.Transfer(from, to, amt); err != nil {
				return fmt.Errorf("transfer %d -> %d: %w", from, to, err)
			}
			for _, n := range []uint32{from, to} {
				acct, err := b.Get(n)
				if err != nil {
					return err
				}
				writeAccount(cmd.OutOrStdout(), acct)
			}
			return nil
		},
	}
}

func (a *app) interestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interest NUMBER",
		Short: "Add floor(loan * rate) to an account's loan",
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
			interest, err := b.CollectInterest(n)
			if err != nil {
				return fmt.Errorf("interest %d: %w", n, err)
			}
			acct, err := b.Get(n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "interest=%d\n", interest)
			writeAccount(cmd.OutOrStdout(), acct)
			return nil
		},
	}
}
