package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

var (
	ErrInvalidVariant = errors.New("invalid variant")
	ErrInvalidPatch   = errors.New("invalid patch")
)

// SnapshotListener receives every snapshot produced by a successful mutation
type SnapshotListener func(snapshot models.ActionConfig, revision uint64)

// VariantStore holds the tagged action configuration of one editing session
type VariantStore interface {
	// Get returns a copy of the current configuration
	Get() models.ActionConfig
	// SetActive changes the discriminant without touching any payload
	SetActive(actionType models.ActionType) (models.ActionConfig, error)
	// PatchVariant shallow-merges patch into the payload of actionType
	PatchVariant(actionType models.ActionType, patch models.Patch) (models.ActionConfig, error)
	// Revision is incremented by every successful mutation
	Revision() uint64
	Subscribe(listener SnapshotListener)
}

type variantStore struct {
	current   models.ActionConfig
	revision  uint64
	listeners []SnapshotListener
}

func NewVariantStore(initial models.ActionConfig) VariantStore {
	return &variantStore{current: initial.Clone()}
}

func (s *variantStore) Get() models.ActionConfig {
	return s.current.Clone()
}

func (s *variantStore) Revision() uint64 {
	return s.revision
}

func (s *variantStore) Subscribe(listener SnapshotListener) {
	s.listeners = append(s.listeners, listener)
}

func (s *variantStore) SetActive(actionType models.ActionType) (models.ActionConfig, error) {
	if !actionType.IsValid() {
		return s.Get(), fmt.Errorf("%w: %q", ErrInvalidVariant, actionType)
	}

	next := s.current.Clone()
	next.Type = actionType
	return s.commit(next), nil
}

func (s *variantStore) PatchVariant(actionType models.ActionType, patch models.Patch) (models.ActionConfig, error) {
	if !actionType.IsValid() {
		return s.Get(), fmt.Errorf("%w: %q", ErrInvalidVariant, actionType)
	}

	if err := checkPatchKeys(actionType, patch); err != nil {
		return s.Get(), fmt.Errorf("%w: %s: %v", ErrInvalidPatch, actionType, err)
	}

	next := s.current.Clone()
	if err := mergePatch(next.Variant(actionType), patch); err != nil {
		return s.Get(), fmt.Errorf("%w: %s: %v", ErrInvalidPatch, actionType, err)
	}
	return s.commit(next), nil
}

func (s *variantStore) commit(next models.ActionConfig) models.ActionConfig {
	s.current = next
	s.revision++
	for _, listener := range s.listeners {
		listener(next.Clone(), s.revision)
	}
	return next.Clone()
}

// patchKeys holds the exact json names accepted for each variant payload
var patchKeys = buildPatchKeys()

func buildPatchKeys() map[models.ActionType]map[string]struct{} {
	keys := make(map[models.ActionType]map[string]struct{}, len(models.AllActionTypes))
	config := models.DefaultActionConfig()
	for _, actionType := range models.AllActionTypes {
		payload := reflect.TypeOf(config.Variant(actionType)).Elem()
		names := make(map[string]struct{}, payload.NumField())
		for i := 0; i < payload.NumField(); i++ {
			name := strings.SplitN(payload.Field(i).Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				continue
			}
			names[name] = struct{}{}
		}
		keys[actionType] = names
	}
	return keys
}

// checkPatchKeys rejects keys that are not an exact json name of the payload.
// encoding/json matches names case-insensitively, so the decoder alone would
// accept "RecipientAddress".
func checkPatchKeys(actionType models.ActionType, patch models.Patch) error {
	names := patchKeys[actionType]
	for key := range patch {
		if _, ok := names[key]; !ok {
			return fmt.Errorf("unknown field %q", key)
		}
	}
	return nil
}

// mergePatch decodes patch into target. Decoding into an existing struct only
// assigns the keys present in the document, and slices are replaced rather
// than merged, which is exactly the shallow-merge contract of the editor.
func mergePatch(target any, patch models.Patch) error {
	if len(patch) == 0 {
		return nil
	}

	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
