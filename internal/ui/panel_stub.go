//go:build !ebiten

package ui

import "particle-globe/internal/core"

// Panel is a no-op placeholder for headless builds.
type Panel struct{ Visible bool }

// NewPanel returns nil in the headless build.
func NewPanel() *Panel { return nil }

// Toggle is a no-op in the headless build.
func (p *Panel) Toggle() {}

// Update is a no-op in the headless build.
func (p *Panel) Update(core.ParameterProvider) {}

// Draw is a no-op in the headless build.
func (p *Panel) Draw(any) {}
