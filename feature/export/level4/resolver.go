package level4

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"quote-manager/core/catalog"
	"quote-manager/core/extract"
	"quote-manager/core/utils"
)

// Candidate-key tables for the embedded selection payload. See
// feature/export/slots/keys.go for the versioning convention.

// ConfigIDKeys locate the level-4 configuration id inside a blob.
var ConfigIDKeys = []string{
	"level4_config_id", "level4ConfigId", "configuration_id", "configurationId",
	"config_id", "configId",
}

// EntryListKeys locate the ordered per-input selections.
var EntryListKeys = []string{
	"entries", "selections", "selected_values", "selectedValues", "values", "inputs",
}

// entryIndexKeys and entryValueKeys locate the fields of one selection entry.
var entryIndexKeys = []string{"index", "input_index", "inputIndex", "position", "idx"}
var entryValueKeys = []string{"value", "selected_value", "selectedValue", "option_id", "optionId", "selection"}

// Heuristic fallback keys used when the catalog has no definition.
var fieldLabelKeys = []string{"field_label", "fieldLabel", "label", "field_name", "fieldName"}
var templateTypeKeys = []string{"template_type", "templateType", "template", "type"}
var optionListKeys = []string{"options", "choices", "option_list", "optionList"}
var optionIDKeys = []string{"id", "option_id", "optionId", "value"}
var optionLabelKeys = []string{"label", "name", "display_name", "displayName", "text"}

// SelectionEntry is one ordered input selection of a level-4 payload.
type SelectionEntry struct {
	// Index is the input position, zero-based.
	Index int `json:"index"`
	// Value is the stored selection value.
	Value string `json:"value"`
}

// Payload is the recognizable selection payload embedded in a slot's
// sub-configuration blob. Once recognized it always carries a ConfigID.
type Payload struct {
	// ConfigID is the level-4 configuration id.
	ConfigID string `json:"config_id"`
	// Entries is the ordered (input index, selected value) list.
	Entries []SelectionEntry `json:"entries"`
}

// RenderedEntry is one human-readable selection for the document.
type RenderedEntry struct {
	// InputLabel is the display label of the input, suffixed "#n" when the
	// configuration has more than one entry.
	InputLabel string `json:"input_label"`
	// OptionLabel is the matched option's label, or the raw stored value
	// when no catalog option matched.
	OptionLabel string `json:"option_label"`
	// Detail carries the option id backing the selection, when known.
	Detail string `json:"detail,omitempty"`
	// Unresolved marks values rendered verbatim without a catalog match.
	Unresolved bool `json:"unresolved,omitempty"`
}

// Section is the resolved rendering of one slot's sub-configuration.
type Section struct {
	// Payload is the recognized selection payload, nil when none was found.
	Payload *Payload `json:"payload,omitempty"`
	// FieldLabel is the configuration's display label.
	FieldLabel string `json:"field_label,omitempty"`
	// TemplateType is "fixed" or "variable".
	TemplateType string `json:"template_type,omitempty"`
	// FromCatalog is true when the definition came from the remote catalog
	// rather than the heuristic in-blob fallback.
	FromCatalog bool `json:"from_catalog"`
	// Entries are the rendered selections.
	Entries []RenderedEntry `json:"entries,omitempty"`
	// RawFallback carries the blob's textual form when no configuration id
	// was recognizable. Data is never silently dropped.
	RawFallback string `json:"raw_fallback,omitempty"`
}

// Unresolved counts the entries rendered without a catalog match.
func (s Section) Unresolved() int {
	n := 0
	for _, e := range s.Entries {
		if e.Unresolved {
			n++
		}
	}
	return n
}

// ExtractPayload searches a sub-configuration blob for a recognizable
// (configuration id, entries) pair under any historical key spelling.
// Returns nil when no configuration id is present anywhere in the blob.
func ExtractPayload(blob any) *Payload {
	host := extract.Search(blob, func(obj map[string]any) bool {
		_, ok := extract.Field(obj, ConfigIDKeys)
		return ok
	})
	if host == nil {
		return nil
	}

	payload := &Payload{ConfigID: extract.String(host, ConfigIDKeys)}

	raw, ok := extract.Field(host, EntryListKeys)
	if !ok {
		return payload
	}
	payload.Entries = normalizeEntries(raw)
	return payload
}

// normalizeEntries accepts the three historical entry encodings: an array
// of entry objects (or bare values), an object keyed by input index, or a
// single scalar, and yields an ordered (index, value) list.
func normalizeEntries(raw any) []SelectionEntry {
	switch v := raw.(type) {
	case []any:
		entries := make([]SelectionEntry, 0, len(v))
		for i, item := range v {
			if obj := extract.AsObject(item); obj != nil {
				idx, hasIdx := extract.Int(obj, entryIndexKeys)
				if !hasIdx {
					idx = i
				}
				entries = append(entries, SelectionEntry{
					Index: idx,
					Value: extract.String(obj, entryValueKeys),
				})
				continue
			}
			entries = append(entries, SelectionEntry{Index: i, Value: strings.TrimSpace(utils.ToString(item))})
		}
		sortEntries(entries)
		return entries
	case map[string]any:
		entries := make([]SelectionEntry, 0, len(v))
		for key, item := range v {
			entries = append(entries, SelectionEntry{
				Index: utils.ToInt(key),
				Value: strings.TrimSpace(utils.ToString(item)),
			})
		}
		sortEntries(entries)
		return entries
	case nil:
		return nil
	default:
		return []SelectionEntry{{Index: 0, Value: strings.TrimSpace(utils.ToString(v))}}
	}
}

func sortEntries(entries []SelectionEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })
}

// CollectIDs gathers the distinct configuration ids across all blobs of an
// export, preserving first-seen order. This is the pure collect pass; the
// caller issues one batched catalog lookup for the whole set.
func CollectIDs(blobs []any) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, blob := range blobs {
		payload := ExtractPayload(blob)
		if payload == nil || payload.ConfigID == "" {
			continue
		}
		if _, dup := seen[payload.ConfigID]; dup {
			continue
		}
		seen[payload.ConfigID] = struct{}{}
		ids = append(ids, payload.ConfigID)
	}
	return ids
}

// Resolve renders one sub-configuration blob against the already-fetched
// definition map. This is the pure apply pass: no lookups happen here.
//
// Degradation order: a missing catalog definition falls back to heuristic
// extraction from the blob itself; a blob with no recognizable payload at
// all renders as raw diagnostic text.
func Resolve(blob any, defs map[string]catalog.Definition) Section {
	payload := ExtractPayload(blob)
	if payload == nil {
		return Section{RawFallback: rawText(blob)}
	}

	section := Section{Payload: payload}

	def, fromCatalog := defs[payload.ConfigID]
	if !fromCatalog {
		def = heuristicDefinition(blob, payload.ConfigID)
	}
	section.FromCatalog = fromCatalog
	section.FieldLabel = def.FieldLabel
	section.TemplateType = def.TemplateType

	for i, entry := range payload.Entries {
		rendered := RenderedEntry{InputLabel: inputLabel(def.FieldLabel, i, len(payload.Entries))}
		if opt, ok := matchOption(def.Options, entry.Value); ok {
			rendered.OptionLabel = opt.Label
			rendered.Detail = opt.ID
		} else {
			rendered.OptionLabel = entry.Value
			rendered.Unresolved = true
		}
		section.Entries = append(section.Entries, rendered)
	}

	// A payload with an id but no entries still shows up, so missing data
	// is visible in the document instead of vanishing.
	if len(payload.Entries) == 0 && section.FieldLabel == "" {
		section.RawFallback = rawText(blob)
	}
	return section
}

func inputLabel(fieldLabel string, index, total int) string {
	if fieldLabel == "" {
		fieldLabel = "Input"
	}
	if total <= 1 {
		return fieldLabel
	}
	return fmt.Sprintf("%s #%d", fieldLabel, index+1)
}

// matchOption resolves a stored value against the option list: exact match
// on value, id, or label first, then a case-insensitive pass.
func matchOption(options []catalog.Option, value string) (catalog.Option, bool) {
	if value == "" {
		return catalog.Option{}, false
	}
	for _, opt := range options {
		if value == opt.Value || value == opt.ID || value == opt.Label {
			return opt, true
		}
	}
	folded := strings.ToLower(value)
	for _, opt := range options {
		if folded == strings.ToLower(opt.Value) || folded == strings.ToLower(opt.ID) || folded == strings.ToLower(opt.Label) {
			return opt, true
		}
	}
	return catalog.Option{}, false
}

// heuristicDefinition extracts a degraded definition from the blob itself,
// used when the remote catalog has no entry for the id.
func heuristicDefinition(blob any, configID string) catalog.Definition {
	def := catalog.Definition{ConfigID: configID, TemplateType: catalog.TemplateVariable}

	if label, ok := extract.SearchValue(blob, fieldLabelKeys); ok {
		def.FieldLabel = strings.TrimSpace(utils.ToString(label))
	}
	if tmpl, ok := extract.SearchValue(blob, templateTypeKeys); ok {
		if t := strings.ToLower(strings.TrimSpace(utils.ToString(tmpl))); t == catalog.TemplateFixed || t == catalog.TemplateVariable {
			def.TemplateType = t
		}
	}

	host := extract.Search(blob, func(obj map[string]any) bool {
		_, ok := extract.Field(obj, optionListKeys)
		return ok
	})
	if host == nil {
		return def
	}
	rawOpts, _ := extract.List(host, optionListKeys)
	for _, rawOpt := range rawOpts {
		obj := extract.AsObject(rawOpt)
		if obj == nil {
			val := strings.TrimSpace(utils.ToString(rawOpt))
			if val != "" {
				def.Options = append(def.Options, catalog.Option{ID: val, Label: val})
			}
			continue
		}
		def.Options = append(def.Options, catalog.Option{
			ID:    extract.String(obj, optionIDKeys),
			Label: extract.String(obj, optionLabelKeys),
		})
	}
	return def
}

// rawText renders a blob compactly for the diagnostic fallback.
func rawText(blob any) string {
	if blob == nil {
		return ""
	}
	if s, ok := blob.(string); ok {
		return s
	}
	encoded, err := json.Marshal(blob)
	if err != nil {
		return fmt.Sprintf("%v", blob)
	}
	return string(encoded)
}
