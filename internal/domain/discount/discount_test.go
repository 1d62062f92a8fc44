package discount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajjplace/storefront/internal/domain/pricing"
	"github.com/sajjplace/storefront/internal/storage/kv"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleLines() []pricing.Line {
	return []pricing.Line{
		{ProductID: "p1", Name: "SAJJ Amber", Price: dec("3000"), Qty: 2},
		{ProductID: "p6", Name: "Sample kit", Price: dec("5000"), Qty: 1},
	}
}

func TestRuleAmount_PercentSubtotal(t *testing.T) {
	r := Rule{Code: "SAJJ10", Kind: KindPercentSubtotal, Rate: dec("10")}
	// Subtotal 11000 -> 1100 off.
	assert.True(t, dec("1100").Equal(r.Amount(sampleLines())))
}

func TestRuleAmount_PercentLine(t *testing.T) {
	r := Rule{Code: "SAMPLE10", Kind: KindPercentLine, Rate: dec("10"), ProductID: "p6"}
	assert.True(t, dec("500").Equal(r.Amount(sampleLines())))
}

func TestRuleAmount_PercentLine_ProductAbsent(t *testing.T) {
	r := Rule{Code: "SAMPLE10", Kind: KindPercentLine, Rate: dec("10"), ProductID: "p6"}
	lines := []pricing.Line{{ProductID: "p1", Price: dec("3000"), Qty: 1}}
	assert.True(t, r.Amount(lines).IsZero())
}

func TestRuleAmount_UnknownKind(t *testing.T) {
	r := Rule{Code: "X", Kind: Kind("bogus"), Rate: dec("50")}
	assert.True(t, r.Amount(sampleLines()).IsZero())
}

func TestValidate_KnownCode(t *testing.T) {
	v := NewValidator(DefaultTable())

	rule, err := v.Validate("sajj10", NewKVUsageLog(kv.NewMemory()))
	require.NoError(t, err)
	assert.Equal(t, "SAJJ10", rule.Code)
	assert.Equal(t, KindPercentSubtotal, rule.Kind)
}

func TestValidate_UnknownCode(t *testing.T) {
	v := NewValidator(DefaultTable())

	_, err := v.Validate("NOPE123", NewKVUsageLog(kv.NewMemory()))
	require.ErrorIs(t, err, ErrUnknownCode)
}

func TestValidate_AlreadyUsed(t *testing.T) {
	v := NewValidator(DefaultTable())
	usage := NewKVUsageLog(kv.NewMemory())

	// Repeated validation before commit is allowed.
	_, err := v.Validate("SAJJ10", usage)
	require.NoError(t, err)
	_, err = v.Validate("SAJJ10", usage)
	require.NoError(t, err)

	require.NoError(t, usage.MarkUsed("SAJJ10"))

	_, err = v.Validate("SAJJ10", usage)
	require.ErrorIs(t, err, ErrAlreadyUsed)

	// Other codes are unaffected.
	_, err = v.Validate("SAMPLE10", usage)
	require.NoError(t, err)
}

func TestUsageLog_SurvivesReload(t *testing.T) {
	backend := kv.NewMemory()

	usage := NewKVUsageLog(backend)
	require.NoError(t, usage.MarkUsed("sample10"))

	reloaded := NewKVUsageLog(backend)
	assert.True(t, reloaded.Used("SAMPLE10"))
	assert.False(t, reloaded.Used("SAJJ10"))
}

func TestTableMerge(t *testing.T) {
	table := DefaultTable()
	table.Merge([]Rule{{Code: "weekend15", Kind: KindPercentSubtotal, Rate: dec("15")}})

	v := NewValidator(table)
	rule, err := v.Validate("WEEKEND15", nil)
	require.NoError(t, err)
	assert.True(t, dec("15").Equal(rule.Rate))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SAJJ10", Normalize("  sajj10 "))
}
