package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/clock"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driving"
)

func TestFlows_CreatesIndependentMachines(t *testing.T) {
	api := &mockIntegrationAPI{}
	clk := clock.NewManual()
	status := connectedDrive()
	flows := NewFlows(FlowsConfig{
		API:           api,
		Folders:       NewFolderService(&mockFolderAPI{}, status, nil),
		Status:        status,
		Clock:         clk,
		Text:          mockLocalizer{},
		SettingsRoute: "/integrations",
		CallbackDelay: time.Second,
	})
	nav := &mockNavigator{}

	first := flows.CallbackHandler(driving.Surface{Navigator: nav})
	second := flows.CallbackHandler(driving.Surface{Navigator: nav})
	require.NoError(t, first.Handle(context.Background(), url.Values{"code": {"a"}}))
	require.NoError(t, second.Handle(context.Background(), url.Values{"code": {"b"}}))

	clk.Advance(time.Second)
	assert.Equal(t, []string{"/integrations", "/integrations"}, nav.Routes())
	assert.Equal(t, "/integrations", flows.SettingsRoute())

	panel := flows.StatusPanel(driving.Surface{})
	require.NoError(t, panel.Mount(context.Background()))
	assert.Equal(t, domain.PanelNotConnected, panel.Snapshot().State)

	var got []domain.ProvisionedFolders
	wizard := flows.FolderWizard("Cooking", "", func(f domain.ProvisionedFolders) { got = append(got, f) })
	require.NoError(t, wizard.Generate(context.Background()))
	clk.Advance(DefaultCompletionDelay)
	assert.Len(t, got, 1)
}

func TestFlows_DefaultSettingsRoute(t *testing.T) {
	assert.Equal(t, DefaultSettingsRoute, NewFlows(FlowsConfig{}).SettingsRoute())
}
