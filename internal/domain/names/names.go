// Package names converts Bayer designations between the forms used by the
// source catalogues (three-letter abbreviations), the internal TeX form and
// the HTML, UTF-8 and ASCII forms written to the outputs.
package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// abbreviations maps catalogue Greek-letter abbreviations to TeX. Omicron has
// no TeX command and is written as a capital O.
var abbreviations = map[string]string{
	// Bright Star Catalogue
	"Alp": `\alpha`, "Bet": `\beta`, "Gam": `\gamma`, "Del": `\delta`, "Eps": `\epsilon`,
	"Zet": `\zeta`, "Eta": `\eta`, "The": `\theta`, "Iot": `\iota`, "Kap": `\kappa`,
	"Lam": `\lambda`, "Mu": `\mu`, "Nu": `\nu`, "Xi": `\xi`, "Omi": "O", "Pi": `\pi`,
	"Rho": `\rho`, "Sig": `\sigma`, "Tau": `\tau`, "Ups": `\upsilon`, "Phi": `\phi`,
	"Chi": `\chi`, "Psi": `\psi`, "Ome": `\omega`,

	// Bayer and Flamsteed cross index
	"alf": `\alpha`, "bet": `\beta`, "gam": `\gamma`, "del": `\delta`, "eps": `\epsilon`,
	"zet": `\zeta`, "eta": `\eta`, "the": `\theta`, "iot": `\iota`, "kap": `\kappa`,
	"lam": `\lambda`, "mu.": `\mu`, "nu.": `\nu`, "ksi": `\xi`, "omi": "O", "pi.": `\pi`,
	"rho": `\rho`, "sig": `\sigma`, "tau": `\tau`, "ups": `\upsilon`, "phi": `\phi`,
	"chi": `\chi`, "psi": `\psi`, "ome": `\omega`,
}

var greek = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa",
	"lambda", "mu", "nu", "xi", "pi", "rho", "sigma", "tau", "upsilon", "phi", "chi", "psi", "omega",
}

// UTF-8 code points of the lower-case letters above, in the same order.
var greekRunes = []rune{
	'α', 'β', 'γ', 'δ', 'ε', 'ζ', 'η', 'θ', 'ι', 'κ',
	'λ', 'μ', 'ν', 'ξ', 'π', 'ρ', 'σ', 'τ', 'υ', 'φ', 'χ', 'ψ', 'ω',
}

var superscriptEntities = []string{"&#x00B9;", "&#x00B2;", "&#x00B3;", "&#x2074;", "&#x2075;", "&#x2076;", "&#x2077;"}
var superscriptRunes = []rune{'¹', '²', '³', '⁴', '⁵', '⁶', '⁷'}

var (
	texToHTML  *strings.Replacer
	texToASCII *strings.Replacer
	htmlToUTF8 *strings.Replacer
)

func init() { //nolint:gochecknoinits // replacers are built once from the tables above
	htmlPairs := []string{`\_`, "_"}
	asciiPairs := []string{`\_`, "_"}
	utf8Pairs := []string{}
	for i, entity := range superscriptEntities {
		digit := string(rune('1' + i))
		htmlPairs = append(htmlPairs, "^"+digit, entity)
		asciiPairs = append(asciiPairs, "^"+digit, digit)
		utf8Pairs = append(utf8Pairs, entity, string(superscriptRunes[i]))
	}
	for i, letter := range greek {
		htmlPairs = append(htmlPairs, `\`+letter, "&"+letter+";")
		asciiPairs = append(asciiPairs, `\`+letter, strings.ToUpper(letter[:1])+letter[1:])
		utf8Pairs = append(utf8Pairs, "&"+letter+";", string(greekRunes[i]))
	}
	htmlPairs = append(htmlPairs, "$", "")
	asciiPairs = append(asciiPairs, "$", "")
	texToHTML = strings.NewReplacer(htmlPairs...)
	texToASCII = strings.NewReplacer(asciiPairs...)
	htmlToUTF8 = strings.NewReplacer(utf8Pairs...)
}

// BayerTeX converts a catalogue abbreviation such as "Alp" or "mu." to TeX,
// appending "^n" for a superscript 1 to 9. Unknown abbreviations pass through
// unchanged.
func BayerTeX(abbrev string, superscript int) string {
	abbrev = strings.TrimSpace(abbrev)
	if abbrev == "" {
		return ""
	}
	tex, ok := abbreviations[abbrev]
	if !ok {
		tex = abbrev
	}
	if superscript >= 1 && superscript <= 9 {
		tex += "^" + string(rune('0'+superscript))
	}
	return tex
}

// KnownAbbreviation reports whether abbrev is a recognised Greek-letter abbreviation.
func KnownAbbreviation(abbrev string) bool {
	_, ok := abbreviations[strings.TrimSpace(abbrev)]
	return ok
}

// HTML converts a TeX name to HTML entities.
func HTML(tex string) string {
	if tex == "" {
		return ""
	}
	return texToHTML.Replace(tex)
}

// ASCII converts a TeX name to plain ASCII ("Alpha1", "Omicron2").
func ASCII(tex string) string {
	if tex == "" {
		return ""
	}
	out := texToASCII.Replace(tex)
	switch out {
	case "O", "O1", "O2":
		out = "Omicron" + out[1:]
	}
	return out
}

// UTF8 converts HTML entities to glyphs and cuts the result at the first "-".
func UTF8(html string) string {
	out := htmlToUTF8.Replace(html)
	if i := strings.IndexByte(out, '-'); i >= 0 {
		out = out[:i]
	}
	return out
}

// Glyph is the UTF-8 Bayer glyph of a TeX name.
func Glyph(tex string) string {
	return UTF8(HTML(tex))
}

// Clean trims a free-text name and normalises it to NFC.
func Clean(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Token makes a name safe for whitespace-separated output by replacing
// spaces with underscores. Empty names become "-".
func Token(name string) string {
	if name == "" {
		return "-"
	}
	return strings.ReplaceAll(name, " ", "_")
}
