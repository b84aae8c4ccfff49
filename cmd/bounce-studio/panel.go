package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/bounce/internal/controls"
	"github.com/Faultbox/bounce/internal/scene"
)

// lightRange bounds the light position sliders.
const lightRange = 10

func (app *App) renderLightingPanel() {
	surface := app.viewer.Surface
	state := app.viewer.State

	imgui.Text("Scene")
	for i, id := range scene.IDs() {
		if i > 0 {
			imgui.SameLine()
		}
		desc, _ := scene.Lookup(id)
		if imgui.Button(desc.Name) {
			if err := surface.SelectScene(id); err != nil {
				app.switchFailed(err, zap.Stringer("scene", id))
			} else {
				app.setStatus("")
			}
		}
	}
	imgui.TextDisabled(fmt.Sprintf("Active: %s", state.Active.Name))
	if s := app.viewer.Scene(); s != nil {
		imgui.TextDisabled(fmt.Sprintf("%d triangles, %d materials", s.TriangleCount(), len(s.Materials)))
	}

	imgui.Spacing()
	imgui.Separator()
	imgui.Text("Lighting")
	for _, spec := range controls.Specs {
		app.renderSlider(surface, spec)
	}

	direct := !state.Tunables.DisableDirect
	if imgui.Checkbox("Direct Light", &direct) {
		state.Tunables.DisableDirect = !direct
	}
	indirect := !state.Tunables.DisableIndirect
	if imgui.Checkbox("Indirect Light", &indirect) {
		state.Tunables.DisableIndirect = !indirect
	}

	imgui.Spacing()
	imgui.Text("Light Position")
	pos := &state.Light.Position
	imgui.SliderFloatV("X##light", &pos.X, -lightRange, lightRange, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Y##light", &pos.Y, -lightRange, lightRange, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Z##light", &pos.Z, -lightRange, lightRange, "%.2f", imgui.SliderFlagsNone)

	imgui.Spacing()
	imgui.Separator()
	imgui.Checkbox("Disable Camera Control", &state.CameraLocked)

	imgui.Spacing()
	imgui.TextDisabled("Drag to rotate, scroll to zoom")
	imgui.TextDisabled("WASD to pan, Q/E down/up")
	imgui.TextDisabled("1/2 scenes, [ ] samples, F1/F2 lights")
	imgui.TextDisabled("File > Open glTF... loads a scene")

	if app.status != "" {
		imgui.Spacing()
		imgui.TextWrapped(app.status)
	}
}

// renderSlider draws one numeric control. Values go through the surface so
// they are clamped the same way hotkeys are.
func (app *App) renderSlider(surface *controls.Surface, spec controls.Spec) {
	cur, err := surface.Get(spec.Name)
	if err != nil {
		return
	}
	label := spec.Label + "##" + spec.Name

	if spec.Integer {
		v := int32(cur)
		if imgui.SliderIntV(label, &v, int32(spec.Min), int32(spec.Max), "%d", imgui.SliderFlagsNone) {
			_, _ = surface.Set(spec.Name, float32(v))
		}
		return
	}
	v := cur
	if imgui.SliderFloatV(label, &v, spec.Min, spec.Max, "%.2f", imgui.SliderFlagsNone) {
		_, _ = surface.Set(spec.Name, v)
	}
}
