package tablehier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Entity: "widgets",
		Columns: []Column{
			{Key: "name", Label: "Name", Priority: PriorityCritical, CriticalInfo: true},
			{Key: "status", Label: "Status", MobileLabel: "St", Priority: PriorityHigh, CriticalInfo: true},
			{Key: "vendor", Label: "Vendor", Priority: PriorityMedium, HideOn: []string{SizeXS, SizeSM}},
			{Key: "serial", Label: "Serial Number", Priority: PriorityLow, HideOn: []string{SizeMD}},
			{Key: "notes", Label: "Notes", Priority: PriorityLow, HideOn: []string{SizeXS}},
		},
		MobileDefaults: []string{"name", "status"},
	}
}

func TestResolveDesktopReturnsAllInOrder(t *testing.T) {
	cols := Resolve(testConfig(), BreakpointDesktop)
	require.Len(t, cols, 5)
	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		keys = append(keys, c.Key)
	}
	require.Equal(t, []string{"name", "status", "vendor", "serial", "notes"}, keys)
}

func TestResolveMobileHidesSmallSizes(t *testing.T) {
	cols := Resolve(testConfig(), BreakpointMobile)
	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		keys = append(keys, c.Key)
	}
	// xs/sm hidden columns never show on mobile, md-hidden ones do
	require.Equal(t, []string{"name", "status", "serial"}, keys)
}

func TestResolveTabletHidesMD(t *testing.T) {
	cols := Resolve(testConfig(), BreakpointTablet)
	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		keys = append(keys, c.Key)
	}
	require.Equal(t, []string{"name", "status", "vendor", "notes"}, keys)
}

func TestResolveMobileLabelSubstitution(t *testing.T) {
	cols := Resolve(testConfig(), BreakpointMobile)
	require.Equal(t, "St", cols[1].Label)

	desktop := Resolve(testConfig(), BreakpointDesktop)
	require.Equal(t, "Status", desktop[1].Label)
}

func TestResolveCriticalNormalizesToHighTier(t *testing.T) {
	cols := Resolve(testConfig(), BreakpointDesktop)
	require.Equal(t, "high", cols[0].Tier)
	require.Equal(t, "high", cols[1].Tier)
	require.Equal(t, "low", cols[3].Tier)
}

func TestResolveStickyIsFirstMobileDefault(t *testing.T) {
	cols := Resolve(testConfig(), BreakpointMobile)
	require.True(t, cols[0].Sticky)
	for _, c := range cols[1:] {
		require.False(t, c.Sticky, c.Key)
	}
}

func TestMobileCardFields(t *testing.T) {
	require.Equal(t, []string{"name", "status"}, MobileCardFields(testConfig()))

	cfg := testConfig()
	for i := range cfg.Columns {
		cfg.Columns[i].CriticalInfo = false
	}
	// без critical_info колонок карточка строится из mobile defaults
	require.Equal(t, []string{"name", "status"}, MobileCardFields(cfg))
}

func TestValidateRejectsUnknownMobileDefault(t *testing.T) {
	cfg := testConfig()
	cfg.MobileDefaults = append(cfg.MobileDefaults, "ghost")
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ghost")
}

func TestBuiltinConfigsAreValid(t *testing.T) {
	for _, entity := range Entities() {
		cfg, ok := ConfigFor(entity)
		require.True(t, ok, entity)
		require.NoError(t, Validate(cfg), entity)
		require.NotEmpty(t, cfg.Columns, entity)
	}
}
