package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-opsform/pkg/model"
	"github.com/goliatone/go-opsform/pkg/operation"
	"github.com/goliatone/go-opsform/pkg/render"
	"github.com/goliatone/go-opsform/pkg/validation"
	"github.com/goliatone/go-opsform/pkg/widgets"
)

const noneOption = "(none)"

// Renderer implements render.Renderer for terminal sessions. Every field is
// prompted with the widget it would get in HTML and re-prompted until it
// passes the same validation rules a web submission goes through.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	widgets           *widgets.Registry
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	out               io.Writer
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		widgets:      widgets.NewRegistry(),
		theme:        Theme{ErrorPrefix: "✗ "},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field and serializes the validated answers.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	if r.outputFormat == OutputFormatFormURLEncoded && r.submitTransformer == nil {
		return []byte(url.Values(values).Encode()), nil
	}

	args, err := validation.Decode(form.Fields, values)
	if err != nil {
		return nil, fmt.Errorf("tui: decode answers: %w", err)
	}
	payload := validation.Payload(form.Fields, args)

	if r.submitTransformer != nil {
		payload, err = r.submitTransformer(payload)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, payload)
}

// Collect prompts for every field in form order and returns the raw answers
// in the shape an HTML form would submit. Prefilled values become prompt
// defaults; errors in opts are shown before the matching prompt.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (validation.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	render.LocalizeFormModel(&form, opts)
	state := NewState(opts.Values, opts.Errors)

	if form.Summary != "" {
		if err := r.info(ctx, r.theme.InfoPrefix+form.Summary); err != nil {
			return nil, err
		}
	}
	for _, message := range opts.FormErrors {
		if err := r.info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	for _, field := range form.Fields {
		for _, message := range state.ErrorsFor(field.Name) {
			if err := r.info(ctx, fmt.Sprintf("%s%s %s", r.theme.ErrorPrefix, displayLabel(field), message)); err != nil {
				return nil, err
			}
		}
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}
	return state.Values(), nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	ask := r.prompterFor(field)
	for attempt := 1; ; attempt++ {
		raw, err := ask(ctx, field, state)
		if err != nil {
			return err
		}
		if _, err := validation.DecodeField(field, raw); err != nil {
			if r.maxAttempts > 0 && attempt >= r.maxAttempts {
				return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
			}
			if err := r.info(ctx, fmt.Sprintf("%sInvalid %s: %v", r.theme.ErrorPrefix, displayLabel(field), err)); err != nil {
				return err
			}
			continue
		}
		state.Set(field.Name, raw...)
		return nil
	}
}

type prompter func(ctx context.Context, field model.Field, state *State) ([]string, error)

func (r *Renderer) prompterFor(field model.Field) prompter {
	widget := strings.TrimSpace(field.UIHints["widget"])
	if widget == "" {
		widget, _ = r.widgets.Resolve(field)
	}
	switch widget {
	case widgets.WidgetPassword:
		return r.promptPassword
	case widgets.WidgetCheckbox, widgets.WidgetToggle:
		return r.promptBoolean
	case widgets.WidgetMultiSelect, widgets.WidgetCheckboxes:
		return r.promptMulti
	case widgets.WidgetSelect, widgets.WidgetRadio:
		return r.promptSelect
	}
	switch {
	case field.IsSelect() && field.Multiple:
		return r.promptMulti
	case field.IsSelect():
		return r.promptSelect
	case field.InputKind == operation.KindCheckbox:
		return r.promptBoolean
	case field.InputKind == operation.KindPassword:
		return r.promptPassword
	default:
		return r.promptInput
	}
}

func (r *Renderer) promptInput(ctx context.Context, field model.Field, state *State) ([]string, error) {
	response, err := r.driver.Input(ctx, InputConfig{
		Message: promptLabel(field),
		Default: firstValue(state, field.Name),
		Help:    displayHelp(field),
	})
	if err != nil {
		return nil, err
	}
	return []string{strings.TrimSpace(response)}, nil
}

func (r *Renderer) promptPassword(ctx context.Context, field model.Field, _ *State) ([]string, error) {
	response, err := r.driver.Password(ctx, InputConfig{
		Message: promptLabel(field),
		Help:    displayHelp(field),
	})
	if err != nil {
		return nil, err
	}
	return []string{response}, nil
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, state *State) ([]string, error) {
	def := false
	if raw, ok := state.Get(field.Name); ok {
		decoded, err := validation.DecodeField(model.Field{InputKind: operation.KindCheckbox}, raw)
		def = err == nil && decoded == true
	}
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: promptLabel(field),
		Default: def,
		Help:    displayHelp(field),
	})
	if err != nil {
		return nil, err
	}
	if resp {
		return []string{"true"}, nil
	}
	return []string{"false"}, nil
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, state *State) ([]string, error) {
	choices := field.Choices()
	labels := optionLabels(choices)
	offset := 0
	if !field.Required {
		labels = append([]string{noneOption}, labels...)
		offset = 1
	}

	defaultIdx := -1
	if current := firstValue(state, field.Name); current != "" {
		if idx := indexOfValue(choices, current); idx >= 0 {
			defaultIdx = idx + offset
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(field),
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         displayHelp(field),
	})
	if err != nil {
		return nil, err
	}
	idx -= offset
	if idx < 0 || idx >= len(choices) {
		return nil, nil
	}
	return []string{choices[idx].Value.String()}, nil
}

func (r *Renderer) promptMulti(ctx context.Context, field model.Field, state *State) ([]string, error) {
	choices := field.Choices()
	current, _ := state.Get(field.Name)
	var defaults []int
	for _, value := range current {
		if idx := indexOfValue(choices, value); idx >= 0 {
			defaults = append(defaults, idx)
		}
	}

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  promptLabel(field),
		Options:  optionLabels(choices),
		Defaults: defaults,
		Help:     displayHelp(field),
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) {
			out = append(out, choices[idx].Value.String())
		}
	}
	return out, nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return r.driver.Info(ctx, msg)
}

func (r *Renderer) serialize(form model.FormModel, payload map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(payload)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, payload)), nil
	default:
		return json.Marshal(payload)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func promptLabel(field model.Field) string {
	label := displayLabel(field)
	if field.Required {
		return label + " *"
	}
	return label
}

func displayHelp(field model.Field) string {
	if h := field.Metadata["cli.help"]; h != "" {
		return h
	}
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}

func firstValue(state *State, name string) string {
	vals, _ := state.Get(name)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func optionLabels(choices []model.Option) []string {
	out := make([]string, 0, len(choices))
	for _, opt := range choices {
		label := opt.Label
		if label == "" {
			label = opt.Value.String()
		}
		out = append(out, label)
	}
	return out
}

func indexOfValue(choices []model.Option, value string) int {
	for i, opt := range choices {
		if opt.Value.String() == value {
			return i
		}
	}
	return -1
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case nil:
		case []any:
			for _, item := range v {
				flattened.Add(key, fmt.Sprint(item))
			}
		default:
			flattened.Set(key, fmt.Sprint(v))
		}
	}
	return flattened.Encode()
}

func prettyPrint(form model.FormModel, values map[string]any) string {
	var b strings.Builder
	for _, field := range form.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), prettyValue(field, value))
	}
	return b.String()
}

func prettyValue(field model.Field, value any) string {
	if field.InputKind == operation.KindPassword || field.Metadata["sensitive"] == "true" {
		if value == nil || value == "" {
			return ""
		}
		return "***"
	}
	switch v := value.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, optionLabel(field, item))
		}
		return strings.Join(parts, ", ")
	default:
		if field.IsSelect() {
			return optionLabel(field, v)
		}
		return fmt.Sprint(v)
	}
}

func optionLabel(field model.Field, value any) string {
	var raw operation.OptionValue
	if n, ok := value.(float64); ok {
		raw = operation.Number(n)
	} else {
		raw = operation.String(fmt.Sprint(value))
	}
	for _, opt := range field.Choices() {
		if opt.Value.Equal(raw) && opt.Label != "" {
			return opt.Label
		}
	}
	return raw.String()
}
