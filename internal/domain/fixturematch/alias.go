package fixturematch

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var bundledAliases []byte

var ErrInvalidAliasTable = crerr.New("invalid alias table")

type aliasDocument struct {
	Stopwords              []string                     `yaml:"stopwords"`
	TokenAliases           map[string]string            `yaml:"token_aliases"`
	NameAliases            map[string]string            `yaml:"name_aliases"`
	CompetitionNameAliases map[string]map[string]string `yaml:"competition_name_aliases"`
}

// AliasTables holds the stopword set and the three alias maps used by the
// normalizer. It is immutable after construction and safe for concurrent use.
type AliasTables struct {
	stopwords            map[string]struct{}
	tokenAlias           map[string]string
	nameAlias            map[string]string
	competitionNameAlias map[string]map[string]string
}

var loadDefaultAliasTables = sync.OnceValues(func() (*AliasTables, error) {
	return ParseAliasTables(bundledAliases)
})

// DefaultAliasTables returns the process-wide tables parsed from the bundled
// aliases.yaml. It panics if the bundle is invalid, which is a build defect.
func DefaultAliasTables() *AliasTables {
	tables, err := loadDefaultAliasTables()
	if err != nil {
		panic(crerr.Wrap(err, "load bundled alias tables"))
	}
	return tables
}

// ParseAliasTables decodes and validates a YAML alias document.
func ParseAliasTables(raw []byte) (*AliasTables, error) {
	var doc aliasDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode alias tables")
	}

	return NewAliasTables(doc.Stopwords, doc.TokenAliases, doc.NameAliases, doc.CompetitionNameAliases)
}

// NewAliasTables copies the given maps into a validated, read-only table set.
func NewAliasTables(
	stopwords []string,
	tokenAliases map[string]string,
	nameAliases map[string]string,
	competitionNameAliases map[string]map[string]string,
) (*AliasTables, error) {
	t := &AliasTables{
		stopwords:            make(map[string]struct{}, len(stopwords)),
		tokenAlias:           make(map[string]string, len(tokenAliases)),
		nameAlias:            make(map[string]string, len(nameAliases)),
		competitionNameAlias: make(map[string]map[string]string, len(competitionNameAliases)),
	}

	for _, word := range stopwords {
		if !isCanonicalKey(word) {
			return nil, crerr.Wrapf(ErrInvalidAliasTable, "stopword %q is not canonical", word)
		}
		t.stopwords[word] = struct{}{}
	}

	for from, to := range tokenAliases {
		if !isCanonicalKey(from) || !isCanonicalKey(to) {
			return nil, crerr.Wrapf(ErrInvalidAliasTable, "token alias %q -> %q is not canonical", from, to)
		}
		t.tokenAlias[from] = to
	}
	for from, to := range t.tokenAlias {
		if _, chained := t.tokenAlias[to]; chained {
			return nil, crerr.Wrapf(ErrInvalidAliasTable, "token alias target %q is also a token alias", to)
		}
		if _, stop := t.stopwords[to]; stop {
			return nil, crerr.Wrapf(ErrInvalidAliasTable, "token alias %q resolves to stopword %q", from, to)
		}
	}

	if err := copyNameAliases(t.nameAlias, nameAliases, "global"); err != nil {
		return nil, err
	}
	if err := t.checkTargets(t.nameAlias, nil, "global"); err != nil {
		return nil, err
	}

	for rawCode, aliases := range competitionNameAliases {
		code := normalizeCompetitionCode(rawCode)
		if code == "" {
			return nil, crerr.Wrap(ErrInvalidAliasTable, "empty competition code")
		}
		scoped, ok := t.competitionNameAlias[code]
		if !ok {
			scoped = make(map[string]string, len(aliases))
			t.competitionNameAlias[code] = scoped
		}
		if err := copyNameAliases(scoped, aliases, code); err != nil {
			return nil, err
		}
	}
	for code, scoped := range t.competitionNameAlias {
		if err := t.checkTargets(scoped, t.nameAlias, code); err != nil {
			return nil, err
		}
		for from, to := range t.nameAlias {
			if _, shadowed := scoped[to]; shadowed {
				return nil, crerr.Wrapf(ErrInvalidAliasTable, "global alias %q -> %q is rewritten again by %s", from, to, code)
			}
		}
	}

	return t, nil
}

func copyNameAliases(dst, src map[string]string, scope string) error {
	for from, to := range src {
		if !isCanonicalKey(from) || !isCanonicalKey(to) {
			return crerr.Wrapf(ErrInvalidAliasTable, "%s name alias %q -> %q is not canonical", scope, from, to)
		}
		if from == to {
			continue
		}
		dst[from] = to
	}
	return nil
}

// checkTargets keeps resolution single-step: a target must not be rewritten
// again by the same table, the global table or the token alias map.
func (t *AliasTables) checkTargets(table, global map[string]string, scope string) error {
	for from, to := range table {
		if _, chained := table[to]; chained {
			return crerr.Wrapf(ErrInvalidAliasTable, "%s alias %q -> %q chains into another alias", scope, from, to)
		}
		if _, chained := global[to]; chained {
			return crerr.Wrapf(ErrInvalidAliasTable, "%s alias %q -> %q chains into a global alias", scope, from, to)
		}
		if _, chained := t.tokenAlias[to]; chained {
			return crerr.Wrapf(ErrInvalidAliasTable, "%s alias %q -> %q resolves to a token alias", scope, from, to)
		}
	}
	return nil
}

func (t *AliasTables) IsStopword(token string) bool {
	_, ok := t.stopwords[token]
	return ok
}

func (t *AliasTables) TokenAlias(token string) (string, bool) {
	to, ok := t.tokenAlias[token]
	return to, ok
}

// ResolveKey applies competition-scoped, then global name aliases.
func (t *AliasTables) ResolveKey(key, competitionCode string) string {
	if code := normalizeCompetitionCode(competitionCode); code != "" {
		if to, ok := t.competitionNameAlias[code][key]; ok {
			return to
		}
	}
	if to, ok := t.nameAlias[key]; ok {
		return to
	}
	return key
}

// CompetitionCodes lists competitions that carry scoped aliases, sorted.
func (t *AliasTables) CompetitionCodes() []string {
	out := make([]string, 0, len(t.competitionNameAlias))
	for code := range t.competitionNameAlias {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func normalizeCompetitionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func isCanonicalKey(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
