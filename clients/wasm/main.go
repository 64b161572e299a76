//go:build js && wasm

// postergen WASM - client-side poster renderer.
// Compiled with: GOOS=js GOARCH=wasm go build -o postergen.wasm ./clients/wasm/
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"syscall/js"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vck-social/postergen/pkg/canvas"
	"github.com/vck-social/postergen/pkg/generator"
	"github.com/vck-social/postergen/pkg/session"
	"github.com/vck-social/postergen/pkg/template"
)

// The page edits one poster at a time.
var (
	mu    sync.Mutex
	fonts = canvas.DefaultFonts()
	sess  *session.Session
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: consoleWriter{}, NoColor: true})
	log.Info().Int("templates", template.Default().Len()).Msg("postergen WASM loaded")

	// Register JS-callable functions.
	js.Global().Set("goTemplates", js.FuncOf(templates))
	js.Global().Set("goSetFonts", js.FuncOf(setFonts))
	js.Global().Set("goSessionInit", js.FuncOf(sessionInit))
	js.Global().Set("goSetField", js.FuncOf(setField))
	js.Global().Set("goReset", js.FuncOf(reset))
	js.Global().Set("goLoadImage", js.FuncOf(loadImage))
	js.Global().Set("goRemoveImage", js.FuncOf(removeImage))
	js.Global().Set("goRender", js.FuncOf(render))
	js.Global().Set("goExport", js.FuncOf(export))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// consoleWriter forwards log lines to console.log.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

// result is what every binding returns, JSON-encoded.
type result struct {
	OK     bool              `json:"ok"`
	Error  string            `json:"error,omitempty"`
	Values map[string]string `json:"values,omitempty"`
	Images []string          `json:"images,omitempty"`
	Data   string            `json:"data,omitempty"`
	Name   string            `json:"filename,omitempty"`
}

func reply(r result) js.Value {
	data, _ := json.Marshal(r)
	return js.ValueOf(string(data))
}

func fail(err error) js.Value {
	return reply(result{Error: err.Error()})
}

func current() (*session.Session, error) {
	mu.Lock()
	defer mu.Unlock()
	if sess == nil {
		return nil, session.ErrNotInitialized
	}
	return sess, nil
}

func state(s *session.Session) result {
	return result{OK: true, Values: s.Values(), Images: s.ImageKeys()}
}

// goTemplates() - catalogue metadata as JSON.
func templates(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(template.Default().All())
	if err != nil {
		return fail(err)
	}
	return js.ValueOf(string(data))
}

// goSetFonts(regularBase64, boldBase64) - fonts with Tamil coverage for
// sessions started afterwards. Empty strings keep the built-in fonts.
func setFonts(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return fail(errors.New("need regularBase64, boldBase64"))
	}
	regular, err := base64.StdEncoding.DecodeString(args[0].String())
	if err != nil {
		return fail(err)
	}
	bold, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return fail(err)
	}
	fm, err := canvas.NewFontManagerFromBytes(regular, bold)
	if err != nil {
		return fail(err)
	}
	mu.Lock()
	fonts = fm
	mu.Unlock()
	return reply(result{OK: true})
}

// goSessionInit(templateId, profileJSON) - start editing a template.
func sessionInit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail(errors.New("need templateId"))
	}
	var profile session.Profile
	if len(args) > 1 && args[1].Type() == js.TypeString && args[1].String() != "" {
		if err := json.Unmarshal([]byte(args[1].String()), &profile); err != nil {
			return fail(err)
		}
	}

	mu.Lock()
	fm := fonts
	mu.Unlock()

	s, err := session.Open(template.Default(), args[0].String(), profile, session.WithFonts(fm))
	if err != nil {
		return fail(err)
	}
	mu.Lock()
	sess = s
	mu.Unlock()
	return reply(state(s))
}

// goSetField(key, value)
func setField(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return fail(errors.New("need key, value"))
	}
	s, err := current()
	if err != nil {
		return fail(err)
	}
	if err := s.SetField(args[0].String(), args[1].String()); err != nil {
		return fail(err)
	}
	return reply(state(s))
}

// goReset()
func reset(this js.Value, args []js.Value) interface{} {
	s, err := current()
	if err != nil {
		return fail(err)
	}
	if err := s.Reset(); err != nil {
		return fail(err)
	}
	return reply(state(s))
}

// goLoadImage(key, base64Data) - returns a Promise resolving to the result
// JSON once the photo is decoded. A load overtaken by a newer one for the same
// key resolves with an error and leaves the newer image in place.
func loadImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return fail(errors.New("need key, base64Data"))
	}
	key, b64 := args[0].String(), args[1].String()

	return promise(func() js.Value {
		s, err := current()
		if err != nil {
			return fail(err)
		}
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return fail(err)
		}
		if _, err := s.LoadImage(context.Background(), key, data); err != nil {
			return fail(err)
		}
		return reply(state(s))
	})
}

// goRemoveImage(key)
func removeImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail(errors.New("need key"))
	}
	s, err := current()
	if err != nil {
		return fail(err)
	}
	if err := s.RemoveImage(args[0].String()); err != nil {
		return fail(err)
	}
	return reply(state(s))
}

// goRender(scale) - preview as base64 PNG.
func render(this js.Value, args []js.Value) interface{} {
	scale := 0.5
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		scale = args[0].Float()
	}
	s, err := current()
	if err != nil {
		return fail(err)
	}
	img, err := s.Preview(scale)
	if err != nil {
		return fail(err)
	}
	data, err := generator.EncodePNG(img)
	if err != nil {
		return fail(err)
	}
	return reply(result{OK: true, Data: base64.StdEncoding.EncodeToString(data)})
}

// goExport() - Promise resolving to the full-size PNG and its download name.
func export(this js.Value, args []js.Value) interface{} {
	return promise(func() js.Value {
		s, err := current()
		if err != nil {
			return fail(err)
		}
		name, data, err := s.ExportFile(time.Now())
		if err != nil {
			return fail(err)
		}
		return reply(result{OK: true, Name: name, Data: base64.StdEncoding.EncodeToString(data)})
	})
}

// promise runs work on a goroutine so the JS event loop is not blocked.
func promise(work func() js.Value) js.Value {
	var handler js.Func
	handler = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolve := args[0]
		go func() {
			defer handler.Release()
			resolve.Invoke(work())
		}()
		return nil
	})
	return js.Global().Get("Promise").New(handler)
}
