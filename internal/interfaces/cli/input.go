package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/config"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

// isJSON reports whether path names a JSON document.  Anything else is read
// as YAML.
func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// decodeFile reads path into v, choosing the decoder by extension.  Unknown
// fields are rejected so that typos in hand-written scenes surface.
func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneRead, "cannot read file").WithDetail(path)
	}

	if isJSON(path) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(v)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneDecode, "cannot decode file").WithDetail(path)
	}
	return nil
}

// readScene loads a saved scene file.
func readScene(path string) (scene.Scene, error) {
	var sc scene.Scene
	err := decodeFile(path, &sc)
	return sc, err
}

// readScript loads a replay script.
func readScript(path string) (scene.Script, error) {
	var script scene.Script
	err := decodeFile(path, &script)
	return script, err
}

// writeScene saves sc to path in the format implied by its extension.
func writeScene(path string, sc scene.Scene) error {
	var buf bytes.Buffer
	var err error
	if isJSON(path) {
		err = printJSON(&buf, sc)
	} else {
		err = printYAML(&buf, sc)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cannot encode scene")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeSceneRead, "cannot write file").WithDetail(path)
	}
	return nil
}

func viewFromConfig(v config.ViewConfig) scene.ViewSettings {
	return scene.ViewSettings{
		ImplicitHydrogens: v.ImplicitHydrogens,
		ChiralMarkers:     v.ChiralMarkers,
		FunctionalGroups:  v.FunctionalGroups,
		Iodoform:          v.Iodoform,
	}
}
