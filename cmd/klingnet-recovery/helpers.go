package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-recovery/internal/recovery"
	"github.com/Klingon-tech/klingnet-recovery/internal/wallet"
)

// parseHexSecret decodes a hex secret, tolerating a 0x prefix and
// surrounding whitespace.
func parseHexSecret(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, fmt.Errorf("empty secret")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex secret: %w", err)
	}
	return b, nil
}

// supportedCurrencies lists the currency symbols accepted in cryptopaths.
func supportedCurrencies() string {
	return strings.Join(wallet.Currencies(), ", ")
}

// readInput reads path, or r when path is empty or "-".
func readInput(path string, r io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(r)
	}
	return os.ReadFile(path)
}

// splitLines returns the non-blank lines of data, trimmed.
func splitLines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type accountView struct {
	Currency string `json:"currency"`
	Path     string `json:"path"`
	Format   string `json:"format"`
	Address  string `json:"address"`
	XPub     string `json:"xpub"`
}

type groupView struct {
	Name      string   `json:"name"`
	Threshold int      `json:"threshold"`
	Mnemonics []string `json:"mnemonics"`
}

type detailsView struct {
	Name           string          `json:"name"`
	GroupThreshold int             `json:"group_threshold"`
	Groups         []groupView     `json:"groups"`
	Accounts       [][]accountView `json:"accounts"`
}

func newAccountView(a *wallet.Account) accountView {
	return accountView{
		Currency: a.Currency,
		Path:     a.Path,
		Format:   string(a.Format),
		Address:  a.Address,
		XPub:     a.XPub,
	}
}

func newAccountViews(rows [][]*wallet.Account) [][]accountView {
	out := make([][]accountView, len(rows))
	for i, row := range rows {
		for _, a := range row {
			out[i] = append(out[i], newAccountView(a))
		}
	}
	return out
}

func newDetailsView(d *recovery.Details) detailsView {
	v := detailsView{
		Name:           d.Name,
		GroupThreshold: d.GroupThreshold,
		Accounts:       newAccountViews(d.Accounts),
	}
	for _, g := range d.Groups {
		v.Groups = append(v.Groups, groupView{Name: g.Name, Threshold: g.Threshold, Mnemonics: g.Mnemonics})
	}
	return v
}

// formatAccount renders one account as a single table row.
func formatAccount(a *wallet.Account) string {
	return fmt.Sprintf("%-5s %-20s %-7s %s", a.Currency, a.Path, a.Format, a.Address)
}

// formatDetails renders a created share set for printing.
func formatDetails(d *recovery.Details) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d of %d groups required\n", d.Name, d.GroupThreshold, len(d.Groups))
	for _, g := range d.Groups {
		fmt.Fprintf(&b, "\n%s (%d of %d)\n", g.Name, g.Threshold, len(g.Mnemonics))
		for i, m := range g.Mnemonics {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, m)
		}
	}
	b.WriteString("\nAccounts:\n")
	for _, row := range d.Accounts {
		for _, a := range row {
			fmt.Fprintf(&b, "  %s\n", formatAccount(a))
		}
	}
	return b.String()
}
