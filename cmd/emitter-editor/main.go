package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/quasilyte/gdata/v2"

	"emitter-editor/config"
	"emitter-editor/core"
	"emitter-editor/editor"
	"emitter-editor/emitter"
	"emitter-editor/mdl"
	"emitter-editor/particles"
	"emitter-editor/render"
)

func main() {
	refModelPath := flag.String("ref", "", "glTF reference model drawn as a wireframe backdrop")
	textureDir := flag.String("textures", "", "directory for emitter textures (overrides saved setting)")
	flag.Parse()

	storage, err := gdata.Open(gdata.Config{AppName: "emitter-editor"})
	if err != nil {
		log.Printf("settings storage unavailable, preferences will not persist: %v", err)
		storage = nil
	}
	settings := config.NewManager(storage)
	if *textureDir != "" {
		settings.Settings().TextureDir = *textureDir
	}
	if *refModelPath != "" {
		settings.Settings().ReferenceModel = *refModelPath
	}

	doc := emitter.NewDocument()
	if path := flag.Arg(0); path != "" {
		loaded, err := mdl.Load(path)
		if err != nil {
			log.Printf("failed to load %s: %v (starting with a fresh document)", path, err)
		} else {
			doc = loaded
			settings.AddRecentFile(path)
		}
	}

	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		log.Fatalf("failed to create window: %v", err)
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		log.Fatalf("failed to initialize OpenGL: %v", err)
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	if dir := settings.Settings().TextureDir; dir != "" {
		renderer.SetTextureDir(dir)
	} else if doc.TextureDir != "" {
		renderer.SetTextureDir(doc.TextureDir)
	}
	if path := settings.Settings().ReferenceModel; path != "" {
		refModel, err := render.LoadRefModel(path)
		if err != nil {
			log.Printf("failed to load reference model %s: %v", path, err)
		} else {
			renderer.SetRefModel(refModel)
		}
	}

	sys := particles.NewSystem(settings.Settings().MaxParticles)
	ed := editor.NewEditor(doc, sys, window)
	ed.Sensitivity = settings.Settings().Sensitivity

	lastFrame := time.Now()
	for !window.ShouldClose() {
		window.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		width, height := window.GetFramebufferSize()
		vp := core.Viewport{Width: width, Height: height}

		ed.Update(window, dt, vp)
		handleFileShortcuts(ed, doc, settings)

		view := ed.Camera.ViewMatrix()
		proj := ed.Camera.ProjectionMatrix(vp.Aspect())
		renderer.SetCamera(view, proj)

		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.09, 0.09, 0.11, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		renderer.DrawScene(doc, sys, ed.Selected)
		renderer.DrawAxisGizmo(vp)

		window.SetTitle(windowTitle(doc))
		window.SwapBuffers()
	}

	if err := settings.Save(); err != nil {
		log.Printf("failed to save settings: %v", err)
	}
}

// handleFileShortcuts runs the save shortcut outside the editor so the
// editor package stays free of file concerns.
func handleFileShortcuts(ed *editor.Editor, doc *emitter.Document, settings *config.Manager) {
	if ed.Gesture.Active() || !ed.Input.IsShortcut(core.KeyS) {
		return
	}
	if doc.SourcePath == "" {
		log.Printf("no file associated with this document, pass a path on the command line")
		return
	}
	if err := mdl.Save(doc.SourcePath, doc); err != nil {
		log.Printf("save failed: %v", err)
		return
	}
	settings.AddRecentFile(doc.SourcePath)
	log.Printf("saved %s", doc.SourcePath)
}

func windowTitle(doc *emitter.Document) string {
	name := doc.SourcePath
	if name == "" {
		name = doc.ModelName
	}
	if doc.Dirty {
		return fmt.Sprintf("Emitter Editor - %s*", name)
	}
	return fmt.Sprintf("Emitter Editor - %s", name)
}
