package emit

import (
	"fmt"
	"sort"
	"strings"

	"mongoxlate/pkg/config"
	"mongoxlate/pkg/parsetree"
	"mongoxlate/pkg/xlerr"
)

// translateFlags maps each JS regex flag letter through the manifest's
// table, dropping any with no target counterpart, then re-sorts the
// survivors ascending — matching the scenario 4 seed, where "gi" (Python:
// g->s, i->i) renders as the stably-sorted "is", not "si".
func translateFlags(m *config.Manifest, jsFlags string) string {
	var out []string
	for _, r := range jsFlags {
		mapped, ok := m.TranslateFlag(string(r))
		if !ok {
			continue
		}
		out = append(out, mapped)
	}
	sort.Strings(out)
	return strings.Join(out, "")
}

// validateBSONRegexFlags rejects any flag letter not in the manifest's
// BSON regex allow-list, naming every offending letter in one generic
// error, and otherwise returns the flags sorted ascending.
func validateBSONRegexFlags(m *config.Manifest, flags string, pos parsetree.Position) (string, error) {
	var bad []string
	var good []string
	for _, r := range flags {
		f := string(r)
		if m.AllowsBSONRegexFlag(f) {
			good = append(good, f)
		} else {
			bad = append(bad, f)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return "", xlerr.Generic(fmt.Sprintf("BSONRegExp: unsupported flag(s) %q", strings.Join(bad, "")), nil, pos)
	}
	sort.Strings(good)
	return strings.Join(good, ""), nil
}

// doubleFirstBackslash doubles only the first unescaped backslash in a
// regex source, per the Open Question decision to preserve the observed
// non-global-replace behavior as the default rather than doubling every
// unescaped backslash. A caller that needs every backslash doubled
// (global-replace semantics) should post-process with
// strings.ReplaceAll(source, `\`, `\\`) instead of calling this helper.
func doubleFirstBackslash(source string) string {
	for i := 0; i < len(source); i++ {
		if source[i] != '\\' {
			continue
		}
		if i+1 < len(source) && source[i+1] == '\\' {
			// Already an escaped backslash; leave it alone and keep
			// scanning past the pair.
			i++
			continue
		}
		return source[:i] + `\` + source[i:]
	}
	return source
}
