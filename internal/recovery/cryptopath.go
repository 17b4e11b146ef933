package recovery

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Klingon-tech/klingnet-recovery/internal/log"
	"github.com/Klingon-tech/klingnet-recovery/internal/wallet"
	"github.com/Klingon-tech/klingnet-recovery/pkg/slip39"
)

// Cryptopath names one account to derive: a currency, an optional path
// (empty for the currency default) and an optional address format.
type Cryptopath struct {
	Currency string
	Path     string
	Format   string
}

func (c Cryptopath) String() string {
	s := c.Currency
	if c.Path != "" || c.Format != "" {
		s += ":" + c.Path
	}
	if c.Format != "" {
		s += ":" + c.Format
	}
	return s
}

// DefaultCryptopaths derive one Ethereum and one Bitcoin account at their
// default paths.
func DefaultCryptopaths() []Cryptopath {
	return []Cryptopath{{Currency: "ETH"}, {Currency: "BTC"}}
}

// ParseCryptopath parses "SYM", "SYM:path" or "SYM:path:format".
func ParseCryptopath(s string) (Cryptopath, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 || parts[0] == "" {
		return Cryptopath{}, fmt.Errorf("%w: %q", ErrInvalidCryptopath, s)
	}
	cp := Cryptopath{Currency: strings.ToUpper(strings.TrimSpace(parts[0]))}
	if _, err := wallet.LookupCurrency(cp.Currency); err != nil {
		return Cryptopath{}, fmt.Errorf("%w: %v", ErrInvalidCryptopath, err)
	}
	if len(parts) > 1 {
		cp.Path = strings.TrimSpace(parts[1])
		if cp.Path != "" {
			if _, err := wallet.ParsePath(cp.Path); err != nil {
				return Cryptopath{}, fmt.Errorf("%w: %v", ErrInvalidCryptopath, err)
			}
		}
	}
	if len(parts) > 2 {
		f, err := wallet.ParseFormat(parts[2])
		if err != nil {
			return Cryptopath{}, fmt.Errorf("%w: %v", ErrInvalidCryptopath, err)
		}
		cp.Format = string(f)
	}
	return cp, nil
}

// ParseCryptopaths parses a comma-separated cryptopath list.
func ParseCryptopaths(s string) ([]Cryptopath, error) {
	var out []Cryptopath
	for _, item := range strings.Split(s, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		cp, err := ParseCryptopath(item)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// ParseGroups parses a comma-separated list of "name:threshold/count"
// group specs.
func ParseGroups(s string) ([]slip39.GroupSpec, error) {
	var out []slip39.GroupSpec
	seen := make(map[string]struct{})
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, counts, ok := strings.Cut(item, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q (expected name:threshold/count)", ErrInvalidGroupSpec, item)
		}
		ts, cs, ok := strings.Cut(counts, "/")
		if !ok {
			return nil, fmt.Errorf("%w: %q (expected name:threshold/count)", ErrInvalidGroupSpec, item)
		}
		threshold, err := strconv.Atoi(strings.TrimSpace(ts))
		if err != nil {
			return nil, fmt.Errorf("%w: %q threshold: %v", ErrInvalidGroupSpec, item, err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(cs))
		if err != nil {
			return nil, fmt.Errorf("%w: %q count: %v", ErrInvalidGroupSpec, item, err)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate group %q", ErrInvalidGroupSpec, name)
		}
		seen[name] = struct{}{}
		out = append(out, slip39.GroupSpec{Name: name, MemberThreshold: threshold, MemberCount: count})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no groups", ErrInvalidGroupSpec)
	}
	return out, nil
}

// DeriveAccounts derives count accounts for every cryptopath from seed.
// Account i replaces the last path segment with i. The result is indexed
// [i][cryptopath] regardless of the order the workers finish in.
func DeriveAccounts(ctx context.Context, seed []byte, paths []Cryptopath, count int) ([][]*wallet.Account, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: account count %d", ErrInvalidCryptopath, count)
	}
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}

	type target struct {
		currency *wallet.Currency
		path     wallet.Path
		format   wallet.Format
	}
	targets := make([]target, len(paths))
	for i, cp := range paths {
		c, err := wallet.LookupCurrency(cp.Currency)
		if err != nil {
			return nil, err
		}
		f, err := wallet.ParseFormat(cp.Format)
		if err != nil {
			return nil, err
		}
		p := c.DefaultPath(f)
		if cp.Path != "" {
			if p, err = wallet.ParsePath(cp.Path); err != nil {
				return nil, err
			}
		}
		targets[i] = target{currency: c, path: p, format: f}
	}

	out := make([][]*wallet.Account, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < count; i++ {
		out[i] = make([]*wallet.Account, len(targets))
		for j, t := range targets {
			i, j, t := i, j, t
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				p := t.path
				if count > 1 {
					var err error
					if p, err = p.WithLast(uint32(i)); err != nil {
						return err
					}
				}
				acct, err := t.currency.Derive(master, p, t.format)
				if err != nil {
					return fmt.Errorf("%s account %d: %w", t.currency.Symbol, i, err)
				}
				out[i][j] = acct
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Recovery.Debug().
		Int("accounts", count).
		Int("cryptopaths", len(targets)).
		Msg("Derived accounts")
	return out, nil
}
