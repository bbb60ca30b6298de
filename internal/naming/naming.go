// Package naming derives canonical target identifiers from registry names
// and infers vendor suffixes from them.
package naming

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSuffixes is the GL vendor and extension vocabulary. Entries that
// share an ending with a shorter entry must stay listed; Namer always tries
// longer suffixes first.
var DefaultSuffixes = []string{
	"ARB", "EXT", "KHR", "OES", "OVR",
	"NVX", "NV", "AMD", "ATI", "APPLE",
	"INTEL", "MESAX", "MESA", "SGIX", "SGIS", "SGI",
	"SUNX", "SUN", "IBM", "HP", "INGR", "3DFX",
	"OML", "PGI", "GREMEDY", "WIN", "S3", "REND",
	"QCOM", "IMG", "ANGLE", "ARM", "DMP", "FJ", "VIV",
}

const (
	filler     = "BIT"
	maskFiller = "MASK"
)

// Config configures a Namer.
type Config struct {
	// Prefix is the API family prefix, e.g. "gl".
	Prefix string

	// Separator splits raw identifiers into tokens.
	Separator string

	// Suffixes is the vendor vocabulary in priority order.
	Suffixes []string

	// DropMask also elides MASK filler tokens.
	DropMask bool
}

// Namer applies the registry naming convention.
type Namer struct {
	prefix    string
	separator string
	suffixes  []string
	dropMask  bool
	title     cases.Caser
}

// New creates a Namer. Zero fields of cfg take the GL defaults.
func New(cfg Config) *Namer {
	if cfg.Prefix == "" {
		cfg.Prefix = "gl"
	}
	if cfg.Separator == "" {
		cfg.Separator = "_"
	}
	if cfg.Suffixes == nil {
		cfg.Suffixes = DefaultSuffixes
	}

	suffixes := make([]string, 0, len(cfg.Suffixes))
	for _, s := range cfg.Suffixes {
		if s = strings.TrimSpace(s); s != "" {
			suffixes = append(suffixes, s)
		}
	}
	// Longest first, configured order among equal lengths.
	sort.SliceStable(suffixes, func(i, j int) bool {
		return len(suffixes[i]) > len(suffixes[j])
	})

	return &Namer{
		prefix:    cfg.Prefix,
		separator: cfg.Separator,
		suffixes:  suffixes,
		dropMask:  cfg.DropMask,
		title:     cases.Title(language.Und),
	}
}

// Suffixes returns the vocabulary in the order it is consulted.
func (n *Namer) Suffixes() []string {
	return append([]string(nil), n.suffixes...)
}

// Canonicalize converts a raw registry identifier into a target identifier:
//
//	GL_COLOR_BUFFER_BIT -> ColorBuffer
//	GL_TEXTURE_2D       -> Texture2D
//	gl_3d_color         -> GL3dColor
func (n *Namer) Canonicalize(raw string) string {
	if raw == "" {
		return ""
	}

	tokens := strings.Split(raw, n.separator)
	if len(tokens) > 1 && strings.EqualFold(tokens[0], n.prefix) {
		tokens = tokens[1:]
	}

	var b strings.Builder
	first := true
	for _, token := range tokens {
		if token == "" || n.isFiller(token) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(token)
		if unicode.IsDigit(r) {
			if first {
				b.WriteString(strings.ToUpper(n.prefix))
			}
			b.WriteString(token)
		} else {
			b.WriteString(n.title.String(token))
		}
		first = false
	}

	return b.String()
}

func (n *Namer) isFiller(token string) bool {
	if strings.EqualFold(token, filler) {
		return true
	}
	return n.dropMask && strings.EqualFold(token, maskFiller)
}

// ExtractVendorSuffix returns the longest configured suffix that ends raw,
// or "" if none does. A suffix equal to the whole name does not count.
func (n *Namer) ExtractVendorSuffix(raw string) string {
	for _, suffix := range n.suffixes {
		if len(raw) > len(suffix) && strings.HasSuffix(raw, suffix) {
			return suffix
		}
	}
	return ""
}

// StripVendorSuffix splits raw into its base name and vendor suffix. A
// separator left dangling at the end of the base is removed as well.
func (n *Namer) StripVendorSuffix(raw string) (base, suffix string) {
	suffix = n.ExtractVendorSuffix(raw)
	if suffix == "" {
		return raw, ""
	}
	base = strings.TrimSuffix(raw, suffix)
	base = strings.TrimSuffix(base, n.separator)
	return base, suffix
}

// CommandName shortens a camel-case command name: the family prefix is
// removed and the vendor suffix split off.
//
//	glBindTexture    -> BindTexture, ""
//	glBindTextureEXT -> BindTexture, "EXT"
func (n *Namer) CommandName(raw string) (short, suffix string) {
	short = raw
	if len(short) > len(n.prefix) && strings.EqualFold(short[:len(n.prefix)], n.prefix) {
		short = short[len(n.prefix):]
	}
	return n.StripVendorSuffix(short)
}
