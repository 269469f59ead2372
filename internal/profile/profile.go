package profile

import (
	"fmt"
	"slices"
	"strings"
)

// productionMarker is matched as a plain substring against every argument, so
// "--mode=production", "production" and "--env=not-production-ready" all count.
const productionMarker = "production"

// Profile is the resolved build profile for one invocation.
type Profile int

const (
	Development Profile = iota
	Production
)

func (p Profile) String() string {
	switch p {
	case Production:
		return "production"
	default:
		return "development"
	}
}

// IsProduction reports whether p is the production profile
func (p Profile) IsProduction() bool {
	return p == Production
}

func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Profile) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Parse converts a profile label back into a Profile.
func Parse(s string) (Profile, error) {
	switch s {
	case "development":
		return Development, nil
	case "production":
		return Production, nil
	default:
		return Development, fmt.Errorf("unknown profile %q", s)
	}
}

// Invocation is a read-only snapshot of the process arguments and environment.
type Invocation struct {
	args []string
	env  map[string]string
}

// NewInvocation snapshots args and an environ style list of KEY=VALUE pairs.
// Entries without "=" are kept as keys with an empty value.
func NewInvocation(args []string, environ []string) Invocation {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		if key == "" {
			continue
		}
		env[key] = value
	}

	return Invocation{
		args: slices.Clone(args),
		env:  env,
	}
}

// Args returns a copy of the argument list.
func (i Invocation) Args() []string {
	return slices.Clone(i.args)
}

// LookupEnv mirrors os.LookupEnv against the snapshot.
func (i Invocation) LookupEnv(key string) (string, bool) {
	v, ok := i.env[key]
	return v, ok
}

// Resolve classifies the invocation. Any argument containing "production"
// selects Production; everything else, including no arguments, is Development.
func Resolve(inv Invocation) Profile {
	for _, arg := range inv.args {
		if strings.Contains(arg, productionMarker) {
			return Production
		}
	}
	return Development
}
