package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/application/editor"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/reaction"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

func at(x, y int) *scene.Cell { return &scene.Cell{X: x, Y: y} }

func TestReplay_EtheneHydrogenation(t *testing.T) {
	script := scene.Script{Steps: []scene.Step{
		{Op: scene.OpPlace, Element: "C", At: at(0, 0)},
		{Op: scene.OpPlace, Element: "C", At: at(1, 0)},
		{Op: scene.OpCycle, At: at(0, 0), To: at(1, 0)},
		{Op: scene.OpCycle, At: at(0, 0), To: at(1, 0)},
		{Op: scene.OpFillH},
		{Op: scene.OpTool, Tool: "addition"},
		{Op: scene.OpReagent, Reagent: "H2"},
		{Op: scene.OpClickBond, At: at(0, 0), To: at(1, 0)},
	}}

	s := newSession(t)
	require.NoError(t, s.Replay(script, editor.ReplayOptions{}))
	assert.Equal(t, []string{"エタン (CH₃CH₃)"}, names(s))
	assert.Equal(t, reaction.ToolAddition, s.Tool())

	require.NoError(t, s.Apply(scene.Step{Op: scene.OpUndo}))
	assert.Equal(t, []string{"エチレン (CH₂=CH₂)"}, names(s))
	require.NoError(t, s.Apply(scene.Step{Op: scene.OpRedo}))
	assert.Equal(t, []string{"エタン (CH₃CH₃)"}, names(s))
}

func TestReplay_ViewAndGroups(t *testing.T) {
	script := scene.Script{
		View: &scene.ViewSettings{ImplicitHydrogens: true, FunctionalGroups: true},
		Steps: []scene.Step{
			{Op: scene.OpPlace, Element: "C", At: at(0, 0)},
			{Op: scene.OpGroup, Group: "hydroxyl", At: at(1, 0), Direction: "right"},
			{Op: scene.OpMove, At: at(0, 0), To: at(-1, 0)},
			{Op: scene.OpMove, At: at(-1, 0), To: at(0, 0)},
		},
	}
	s := newSession(t)
	require.NoError(t, s.Replay(script, editor.ReplayOptions{}))
	assert.True(t, s.View().FunctionalGroups)
	require.Len(t, s.Report().Molecules, 1)
}

func TestReplay_Errors(t *testing.T) {
	tests := []struct {
		name string
		step scene.Step
		code errors.ErrorCode
	}{
		{"unknown op", scene.Step{Op: "teleport"}, errors.ErrCodeScriptStep},
		{"missing cell", scene.Step{Op: scene.OpPlace, Element: "C"}, errors.ErrCodeScriptStep},
		{"unknown element", scene.Step{Op: scene.OpPlace, Element: "Xe", At: at(0, 0)}, errors.ErrCodeUnknownElement},
		{"empty cell", scene.Step{Op: scene.OpDelete, At: at(9, 9)}, errors.ErrCodeAtomNotFound},
		{"unknown tool", scene.Step{Op: scene.OpTool, Tool: "hammer"}, errors.ErrCodeUnknownTool},
		{"unknown reagent", scene.Step{Op: scene.OpReagent, Reagent: "HBr"}, errors.ErrCodeUnknownReagent},
		{"bad direction", scene.Step{Op: scene.OpGroup, Group: "methyl", At: at(0, 0), Direction: "north"}, errors.ErrCodeUnknownDirection},
		{"nothing to undo", scene.Step{Op: scene.OpUndo}, errors.ErrCodeNothingToUndo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newSession(t).Replay(scene.Script{Steps: []scene.Step{tt.step}}, editor.ReplayOptions{})
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestReplay_ContinueOnReject(t *testing.T) {
	script := scene.Script{Steps: []scene.Step{
		{Op: scene.OpPlace, Element: "C", At: at(0, 0)},
		{Op: scene.OpPlace, Element: "C", At: at(1, 0)},
		{Op: scene.OpTool, Tool: "addition"},
		{Op: scene.OpClickBond, At: at(0, 0), To: at(1, 0)},
		{Op: scene.OpPlace, Element: "O", At: at(2, 0)},
	}}

	err := newSession(t).Replay(script, editor.ReplayOptions{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBondNotEligible))

	s := newSession(t)
	require.NoError(t, s.Replay(script, editor.ReplayOptions{ContinueOnReject: true}))
	assert.Equal(t, 3, s.Canvas().Len())
}

func TestReplay_ContinueOnRejectStopsOnBadSteps(t *testing.T) {
	tests := []struct {
		name string
		step scene.Step
		code errors.ErrorCode
	}{
		{"unknown tool", scene.Step{Op: scene.OpTool, Tool: "hammer"}, errors.ErrCodeUnknownTool},
		{"unknown reagent", scene.Step{Op: scene.OpReagent, Reagent: "HBr"}, errors.ErrCodeUnknownReagent},
		{"bond click with move tool", scene.Step{Op: scene.OpClickBond, At: at(0, 0), To: at(1, 0)}, errors.ErrCodeToolMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := scene.Script{Steps: []scene.Step{
				{Op: scene.OpPlace, Element: "C", At: at(0, 0)},
				{Op: scene.OpPlace, Element: "C", At: at(1, 0)},
				tt.step,
				{Op: scene.OpPlace, Element: "O", At: at(2, 0)},
			}}
			s := newSession(t)
			err := s.Replay(script, editor.ReplayOptions{ContinueOnReject: true})
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
			assert.Equal(t, 2, s.Canvas().Len())
		})
	}
}
