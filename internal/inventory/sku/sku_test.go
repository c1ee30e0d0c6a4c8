package sku

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfy/platform/internal/inventory/domain"
)

func TestBuildBaseJoinsPrefixAndAbbreviations(t *testing.T) {
	base := BuildBase("stk", "Camisa Polo Premium", []string{"Azul", "Grande"})
	assert.Equal(t, "STK-CAMISA-AZUL-GRAN", base)
}

func TestBuildBaseFallsBackToProd(t *testing.T) {
	assert.Equal(t, "STK-PROD", BuildBase("STK", "", nil))
	assert.Equal(t, "STK-PROD", BuildBase("STK", "!!!", nil))
}

func TestBuildBaseStripsAccents(t *testing.T) {
	base := BuildBase("STK", "Calça Jeans Skinny", []string{"Médio"})
	assert.Equal(t, "STK-CALCAJ-MEDI", base)
}

func TestBuildBaseSkipsEmptyAttributeValues(t *testing.T) {
	base := BuildBase("STK", "Tênis", []string{"", "Preto"})
	assert.Equal(t, "STK-TENIS-PRET", base)
}

func TestBuildBaseOutputAlphabet(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Z0-9-]+$`)
	inputs := []struct {
		name  string
		attrs []string
	}{
		{"Camisa Polo", []string{"Azul"}},
		{"  espaços   múltiplos  ", []string{"x y z"}},
		{"ação & reação", []string{"çãõ"}},
		{"123-produto", []string{"42"}},
		{"", []string{""}},
	}
	for _, in := range inputs {
		base := BuildBase("STK", in.name, in.attrs)
		assert.True(t, valid.MatchString(base), "unexpected characters in %q", base)
		assert.NotContains(t, base, "--", "adjacent hyphens in %q", base)
	}
}

func TestLimitTruncates(t *testing.T) {
	long := strings.Repeat("A", 40)
	assert.Len(t, Limit(long, 32), 32)
}

func TestLimitKeepsShortValues(t *testing.T) {
	value := strings.Repeat("A", 10)
	assert.Equal(t, value, Limit(value, 10))
}

type mapProber struct {
	taken map[string]bool
}

func (p *mapProber) Exists(tenantID, sku string) (bool, error) {
	return p.taken[tenantID+"/"+sku], nil
}

func TestAllocatorReturnsFirstFreeSuffix(t *testing.T) {
	prober := &mapProber{taken: map[string]bool{
		"t1/STK-CAMISA-001": true,
		"t1/STK-CAMISA-002": true,
	}}
	alloc := NewAllocator("STK", prober)

	got, err := alloc.Generate("t1", "Camisa", nil)
	require.NoError(t, err)
	assert.Equal(t, "STK-CAMISA-003", got)
}

func TestAllocatorIsDeterministicForUnchangedState(t *testing.T) {
	prober := &mapProber{taken: map[string]bool{"t1/STK-CAMISA-001": true}}
	alloc := NewAllocator("STK", prober)

	first, err := alloc.Generate("t1", "Camisa", nil)
	require.NoError(t, err)
	second, err := alloc.Generate("t1", "Camisa", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAllocatorScopesProbesByTenant(t *testing.T) {
	prober := &mapProber{taken: map[string]bool{"t1/STK-CAMISA-001": true}}
	alloc := NewAllocator("STK", prober)

	got, err := alloc.Generate("t2", "Camisa", nil)
	require.NoError(t, err)
	assert.Equal(t, "STK-CAMISA-001", got)
}

type exhaustedProber struct{}

func (exhaustedProber) Exists(string, string) (bool, error) { return true, nil }

func TestAllocatorExhaustsProbeBudget(t *testing.T) {
	alloc := NewAllocator("STK", exhaustedProber{})

	_, err := alloc.Generate("t1", "Camisa", nil)
	assert.ErrorIs(t, err, domain.ErrSKUGenerationFailed)
}
