package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propchain/internal/chain"
	ct "propchain/internal/chain/chaintest"
)

func TestResolve_KnownPairs(t *testing.T) {
	assert.Equal(t, chain.AccessInternal, Resolve(chain.AccessProtected, chain.AccessInternal))
	assert.Equal(t, chain.AccessPublic, Resolve(chain.AccessPublic, chain.AccessPublic))
	assert.Equal(t, chain.AccessPrivate, Resolve(chain.AccessPrivate, chain.AccessPublic))
	assert.Equal(t, chain.AccessProtected, Resolve(chain.AccessInternal, chain.AccessProtected))
}

func TestResolve_TiesAndNeutral(t *testing.T) {
	levels := []chain.Accessibility{
		chain.AccessPrivate,
		chain.AccessProtectedAndInternal,
		chain.AccessProtected,
		chain.AccessInternal,
		chain.AccessProtectedOrInternal,
		chain.AccessPublic,
	}

	for _, acc := range levels {
		assert.Equal(t, acc, Resolve(acc, acc), "tie %s", acc)
		assert.Equal(t, acc, Resolve(acc, chain.AccessPublic), "public output %s", acc)
		assert.Equal(t, acc, Resolve(chain.AccessPublic, acc), "public host %s", acc)
		assert.Equal(t, acc, Resolve(acc, chain.AccessNotApplicable), "builtin output %s", acc)
		assert.Equal(t, chain.AccessPrivate, Resolve(acc, chain.AccessPrivate), "private output %s", acc)
	}
}

func TestResolve_NeverWidens(t *testing.T) {
	// Every result is at least as restrictive as both inputs, on the
	// enum order used as a tie breaker.
	for host := chain.AccessPrivate; host <= chain.AccessPublic; host++ {
		for out := chain.AccessPrivate; out <= chain.AccessPublic; out++ {
			got := Resolve(host, out)
			if host == chain.AccessProtected && out == chain.AccessInternal {
				assert.Equal(t, chain.AccessInternal, got)
				continue
			}

			assert.LessOrEqual(t, int(got), int(host), "%s/%s", host, out)
			assert.LessOrEqual(t, int(got), int(out), "%s/%s", host, out)
		}
	}
}

func TestResolveChain(t *testing.T) {
	d := ct.ABCTest(chain.OpWhenChanged)
	assert.Equal(t, chain.AccessPublic, ResolveChain(d))
	assert.True(t, Exposable(ResolveChain(d)))

	d.Chain.Links[1].Accessibility = chain.AccessInternal
	assert.Equal(t, chain.AccessInternal, ResolveChain(d))
	assert.False(t, Exposable(ResolveChain(d)))

	d = ct.Descriptor(chain.OpWhenChanged, ct.WithAccess(ct.Type("A"), chain.AccessPrivate), ct.S("Test", ct.String))
	assert.Equal(t, chain.AccessPrivate, ResolveChain(d))
}
