package slip39

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

// zeroReader yields an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

var testGroups = []GroupSpec{
	{Name: "one", MemberThreshold: 1, MemberCount: 1},
	{Name: "two", MemberThreshold: 1, MemberCount: 1},
	{Name: "fam", MemberThreshold: 2, MemberCount: 4},
	{Name: "fren", MemberThreshold: 3, MemberCount: 5},
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex decode %q: %v", s, err)
	}
	return b
}

func deterministicOptions() SplitOptions {
	opts := DefaultSplitOptions()
	opts.Random = zeroReader{}
	return opts
}

const xmasSecret = "dd0e2f02b1f6c92a1a265561bc164135"

var xmasMnemonics = [][]string{
	{"academic acid acrobat romp chubby client grief judicial pulse domain flip elevator become spirit heat patent hawk remove pickup boring"},
	{"academic acid beard romp away ancient domain jacket early admit true disaster manual sniff seafood guest stick grumpy blessing unknown"},
	{
		"academic acid ceramic roster density snapshot crush modify born plastic greatest victim merit weapon general cover wits cradle quick emphasis",
		"academic acid ceramic scared brother carve scout stay repeat that fumes tendency junior clay freshman rhyme infant enlarge puny decent",
		"academic acid ceramic shadow class findings zero blessing sidewalk drink jump hormone advocate flip install alpha ugly speak prospect solution",
		"academic acid ceramic sister aluminum obesity blue furl grownup island educate junk traveler listen evidence merit grant python purchase piece",
	},
	{
		"academic acid decision round academic academic academic academic academic academic academic academic academic academic academic academic academic ranked flame amount",
		"academic acid decision scatter change pleasure dive cricket class impulse lungs hour invasion strike mustang friendly divorce corner penalty fawn",
		"academic acid decision shaft disaster python expand math typical screw rumor research unusual segment install curly debut shadow orange museum",
		"academic acid decision skin browser breathe intimate picture smirk railroad equip spirit nervous capital teaspoon hybrid angel findings hunting similar",
		"academic acid decision snake angel phrase gums response tracks carve secret bucket liquid dictate enemy decrease dance early weapon season",
	},
}

func TestSplitMnemonics_Vector(t *testing.T) {
	got, err := SplitMnemonics(2, testGroups, mustHex(t, xmasSecret), deterministicOptions())
	if err != nil {
		t.Fatalf("SplitMnemonics() error: %v", err)
	}
	if len(got) != len(xmasMnemonics) {
		t.Fatalf("groups = %d, want %d", len(got), len(xmasMnemonics))
	}
	for gi := range xmasMnemonics {
		if len(got[gi]) != len(xmasMnemonics[gi]) {
			t.Fatalf("group %d members = %d, want %d", gi, len(got[gi]), len(xmasMnemonics[gi]))
		}
		for mi, want := range xmasMnemonics[gi] {
			if got[gi][mi] != want {
				t.Errorf("group %d member %d:\n got %s\nwant %s", gi, mi, got[gi][mi], want)
			}
		}
	}
}

func TestSplitMnemonics_AllOnes(t *testing.T) {
	got, err := SplitMnemonics(2, testGroups, bytes.Repeat([]byte{0xff}, 16), deterministicOptions())
	if err != nil {
		t.Fatalf("SplitMnemonics() error: %v", err)
	}
	want := map[[2]int]string{
		{0, 0}: "academic acid acrobat romp change injury painting safari drug browser trash fridge busy finger standard angry similar overall prune ladybug",
		{1, 0}: "academic acid beard romp believe impulse species holiday demand building earth warn lunar olympic clothes piece campus alpha short endless",
		{3, 0}: xmasMnemonics[3][0],
		{3, 1}: "academic acid decision scatter biology trial escape element unfair cage wavy afraid provide blind pitch ultimate hybrid gravity formal voting",
	}
	for k, w := range want {
		if got[k[0]][k[1]] != w {
			t.Errorf("group %d member %d:\n got %s\nwant %s", k[0], k[1], got[k[0]][k[1]], w)
		}
	}
}

func TestSplitMnemonics_512BitSecret(t *testing.T) {
	secret := mustHex(t, "b6a6d8921942dd9806607ebc2750416b289adea669198769f2e15ed926c3aa92"+
		"bf88ece232317b4ea463e84b0fcd3b53577812ee449ccc448eb45e6f544e25b6")
	got, err := SplitMnemonics(2, testGroups, secret, deterministicOptions())
	if err != nil {
		t.Fatalf("SplitMnemonics() error: %v", err)
	}
	one := got[0][0]
	if n := len(strings.Fields(one)); n != 59 {
		t.Fatalf("mnemonic words = %d, want 59", n)
	}
	if !strings.HasPrefix(one, "academic acid acrobat romp academic angel email prospect endorse strategy") ||
		!strings.HasSuffix(one, "alarm depart inherit grin") {
		t.Errorf("unexpected mnemonic %q", one)
	}

	rec, err := CombineMnemonics(append([]string{one}, got[3][:3]...), nil)
	if err != nil {
		t.Fatalf("CombineMnemonics() error: %v", err)
	}
	if !bytes.Equal(rec, secret) {
		t.Errorf("recovered %x, want %x", rec, secret)
	}
}

func TestCombineMnemonics(t *testing.T) {
	secret := mustHex(t, xmasSecret)
	one := xmasMnemonics[0][0]
	fren := xmasMnemonics[3]

	tests := []struct {
		name      string
		mnemonics []string
		wantErr   error
	}{
		{"one and three fren", append([]string{one}, fren[:3]...), nil},
		{"one and four fren", append([]string{one}, fren[:4]...), nil},
		{"fren and fam", append(append([]string{}, fren[2:]...), xmasMnemonics[2][1:3]...), nil},
		{"one and two", []string{xmasMnemonics[1][0], one}, nil},
		{"blank lines ignored", []string{"", one, "  ", xmasMnemonics[1][0]}, nil},
		{"too few fren", append([]string{one}, fren[:2]...), ErrWrongNumberOfMnemonics},
		{"duplicate fren", append(append([]string{one}, fren[:2]...), fren[0]), ErrWrongNumberOfMnemonics},
		{"single group", []string{one}, ErrWrongNumberOfMnemonics},
		{"empty", nil, ErrWrongNumberOfMnemonics},
		{
			"foreign share",
			append(append([]string{one}, fren[:2]...),
				"academic acid academic axle crush swing purple violence teacher curly total equation clock mailman display husband tendency smug laundry disaster"),
			ErrInvalidSet,
		},
		{
			"bad checksum",
			append(append([]string{one}, fren[:2]...),
				"academic acid academic axle crush swing purple violence teacher curly total equation clock mailman display husband tendency smug laundry laundry"),
			ErrInvalidChecksum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineMnemonics(tt.mnemonics, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CombineMnemonics() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CombineMnemonics() error: %v", err)
			}
			if !bytes.Equal(got, secret) {
				t.Errorf("recovered %x, want %x", got, secret)
			}
		})
	}
}

func TestCombineMnemonics_TrezorVector(t *testing.T) {
	m := "duckling enlarge academic academic agency result length solution fridge kidney coal piece deal husband erode duke ajar critical decision keyboard"
	got, err := CombineMnemonics([]string{m}, []byte("TREZOR"))
	if err != nil {
		t.Fatalf("CombineMnemonics() error: %v", err)
	}
	want := "bb54aac4b89dc868ba37d9cc21b2cece"
	if hex.EncodeToString(got) != want {
		t.Errorf("secret = %x, want %s", got, want)
	}

	s, err := DecodeMnemonic(m)
	if err != nil {
		t.Fatalf("DecodeMnemonic() error: %v", err)
	}
	if s.Identifier != 7945 || s.IterationExponent != 0 || s.Extendable {
		t.Errorf("decoded id=%d e=%d ext=%v", s.Identifier, s.IterationExponent, s.Extendable)
	}
}

func TestExtendablePassphrase(t *testing.T) {
	opts := SplitOptions{
		Passphrase: []byte("password"),
		Extendable: true,
		Random:     zeroReader{},
	}
	got, err := SplitMnemonics(2, testGroups, mustHex(t, xmasSecret), opts)
	if err != nil {
		t.Fatalf("SplitMnemonics() error: %v", err)
	}
	wantOne := "academic again acrobat romp cause valid rich glad expect hour undergo software nervous radar zero clothes grant valid energy morning"
	if got[0][0] != wantOne {
		t.Errorf("one = %s, want %s", got[0][0], wantOne)
	}

	set := append(append([]string{}, got[2][:2]...), got[1][0])
	sec, err := CombineMnemonics(set, []byte("password"))
	if err != nil {
		t.Fatalf("CombineMnemonics() error: %v", err)
	}
	if hex.EncodeToString(sec) != xmasSecret {
		t.Errorf("secret = %x, want %s", sec, xmasSecret)
	}

	// A wrong passphrase still decrypts, just to a different secret.
	sec, err = CombineMnemonics(set, nil)
	if err != nil {
		t.Fatalf("CombineMnemonics() error: %v", err)
	}
	if hex.EncodeToString(sec) != "4de13b808e9361d07ae4832afd1d7dbc" {
		t.Errorf("secret without passphrase = %x", sec)
	}
}

func TestSplit_RandomRoundTrip(t *testing.T) {
	secret := bytes.Repeat([]byte{0x5a}, 32)
	opts := SplitOptions{Passphrase: []byte("hunter2")}
	shares, err := Split(2, testGroups, secret, opts)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	set := append([]*Share{}, shares[3][1:4]...)
	set = append(set, shares[2][0], shares[2][3])
	got, err := Combine(set, opts.Passphrase)
	if err != nil {
		t.Fatalf("Combine() error: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Errorf("recovered %x, want %x", got, secret)
	}
}

func TestSplit_InvalidParameters(t *testing.T) {
	secret := make([]byte, 16)
	tests := []struct {
		name      string
		threshold int
		groups    []GroupSpec
		secret    []byte
		opts      SplitOptions
		wantErr   error
	}{
		{"short secret", 1, testGroups[:1], make([]byte, 14), SplitOptions{}, ErrSecretLength},
		{"odd secret", 1, testGroups[:1], make([]byte, 17), SplitOptions{}, ErrSecretLength},
		{"threshold above groups", 3, testGroups[:2], secret, SplitOptions{}, ErrInvalidParameter},
		{"zero threshold", 0, testGroups, secret, SplitOptions{}, ErrInvalidParameter},
		{"no groups", 1, nil, secret, SplitOptions{}, ErrInvalidParameter},
		{"member threshold above count", 1, []GroupSpec{{MemberThreshold: 3, MemberCount: 2}}, secret, SplitOptions{}, ErrInvalidParameter},
		{"one of many", 1, []GroupSpec{{MemberThreshold: 1, MemberCount: 3}}, secret, SplitOptions{}, ErrInvalidParameter},
		{"too many members", 1, []GroupSpec{{MemberThreshold: 2, MemberCount: 17}}, secret, SplitOptions{}, ErrInvalidParameter},
		{"exponent", 1, testGroups[:1], secret, SplitOptions{IterationExponent: 16}, ErrInvalidParameter},
		{"passphrase", 1, testGroups[:1], secret, SplitOptions{Passphrase: []byte("caf\xc3\xa9")}, ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.threshold, tt.groups, tt.secret, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Split() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCombine_ConflictingDuplicate(t *testing.T) {
	shares, err := Split(1, testGroups[2:3], mustHex(t, xmasSecret), deterministicOptions())
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	forged := *shares[0][1]
	forged.MemberIndex = shares[0][0].MemberIndex
	_, err = Combine([]*Share{shares[0][0], &forged}, nil)
	if !errors.Is(err, ErrInvalidSet) {
		t.Errorf("Combine() error = %v, want ErrInvalidSet", err)
	}
}

func TestCombine_BadDigest(t *testing.T) {
	shares, err := Split(1, testGroups[2:3], mustHex(t, xmasSecret), deterministicOptions())
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	tampered := *shares[0][1]
	tampered.Value = append([]byte(nil), tampered.Value...)
	tampered.Value[0] ^= 1
	_, err = Combine([]*Share{shares[0][0], &tampered}, nil)
	if !errors.Is(err, ErrInvalidDigest) || !errors.Is(err, ErrInvalidSet) {
		t.Errorf("Combine() error = %v, want ErrInvalidDigest", err)
	}
}
