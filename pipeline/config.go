package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/wbproto/debug"
	"github.com/signadot/wbproto/fix"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

const (
	// EnvConfig names the environment variable holding a JSON merge patch
	// applied over the loaded configuration.
	EnvConfig = "WBPROTO_CONFIG"
)

type Config struct {
	Passes     PassesConfig     `yaml:"passes" json:"passes"`
	Collision  CollisionConfig  `yaml:"collision" json:"collision"`
	SolidRef   SolidRefConfig   `yaml:"solidRef" json:"solidRef"`
	Motor      MotorConfig      `yaml:"motor" json:"motor"`
	IFS        IFSConfig        `yaml:"ifs" json:"ifs"`
	Converter  CommandConfig    `yaml:"converter" json:"converter"`
	Simplifier SimplifierConfig `yaml:"simplifier" json:"simplifier"`
	Encode     EncodeConfig     `yaml:"encode" json:"encode"`
}

type PassesConfig struct {
	MeshURL   bool `yaml:"meshURL" json:"meshURL"`
	Collision bool `yaml:"collision" json:"collision"`
	SolidRef  bool `yaml:"solidRef" json:"solidRef"`
	Motor     bool `yaml:"motor" json:"motor"`
	IFS       bool `yaml:"ifs" json:"ifs"`
}

type CollisionConfig struct {
	Suffix     string   `yaml:"suffix" json:"suffix"`
	Extensions []string `yaml:"extensions" json:"extensions"`
}

type SolidRefConfig struct {
	Marker string `yaml:"marker" json:"marker"`
	Suffix string `yaml:"suffix" json:"suffix"`
	Field  string `yaml:"field,omitempty" json:"field,omitempty"`
}

type MotorConfig struct {
	StageThreshold int     `yaml:"stageThreshold" json:"stageThreshold"`
	MaxTorque      float64 `yaml:"maxTorque" json:"maxTorque"`
}

type IFSConfig struct {
	CreaseAngle float64 `yaml:"creaseAngle" json:"creaseAngle"`
	Precision   int     `yaml:"precision" json:"precision"`
}

// CommandConfig is a command line template.  "{input}" and "{output}"
// in any argument are replaced when the command is run.
type CommandConfig struct {
	Command []string `yaml:"command,omitempty" json:"command,omitempty"`
}

type SimplifierConfig struct {
	CommandConfig `yaml:",inline" json:",inline"`
	Faces         int `yaml:"faces" json:"faces"`
}

type EncodeConfig struct {
	Indent int `yaml:"indent" json:"indent"`
}

func DefaultConfig() *Config {
	return &Config{
		Passes: PassesConfig{
			MeshURL:   true,
			Collision: true,
			SolidRef:  true,
			Motor:     true,
		},
		Collision: CollisionConfig{
			Suffix:     fix.DefaultCollisionSuffix,
			Extensions: []string{fix.DefaultMeshExtension},
		},
		SolidRef: SolidRefConfig{
			Marker: fix.DefaultSolidMarker,
			Suffix: fix.DefaultRefSuffix,
		},
		Motor: MotorConfig{
			StageThreshold: fix.DefaultStageThreshold,
			MaxTorque:      fix.DefaultMaxTorque,
		},
		IFS: IFSConfig{
			CreaseAngle: fix.DefaultCreaseAngle,
			Precision:   fix.DefaultIFSPrecision,
		},
		Simplifier: SimplifierConfig{
			Faces: 500,
		},
		Encode: EncodeConfig{
			Indent: 2,
		},
	}
}

// LoadConfig reads the YAML configuration at path over the defaults and
// applies the patch in $WBPROTO_CONFIG, if any.  An empty path yields the
// patched defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		d, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(d, cfg); err != nil {
			return nil, fmt.Errorf("could not decode config %q: %w", path, err)
		}
	}
	if err := cfg.ApplyPatch([]byte(os.Getenv(EnvConfig))); err != nil {
		return nil, fmt.Errorf("error applying $%s: %w", EnvConfig, err)
	}
	if debug.Config() {
		debug.Logf("config: %s\n", cfg)
	}
	return cfg, nil
}

// ApplyPatch applies the JSON merge patch p to cfg.  An empty patch is a
// no-op.
func (cfg *Config) ApplyPatch(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if debug.Config() {
		debug.Logf("config patch:\n")
		debug.LogAny(json.RawMessage(p))
	}
	d, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	d, err = jsonpatch.MergePatch(d, p)
	if err != nil {
		return err
	}
	res := &Config{}
	if err := json.Unmarshal(d, res); err != nil {
		return err
	}
	*cfg = *res
	return nil
}

func (cfg *Config) String() string {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("%+v", *cfg)
	}
	return string(d)
}

// AllPasses returns every configured pass, enabled or not, keyed by name.
func (cfg *Config) AllPasses() map[string]fix.Pass {
	res := map[string]fix.Pass{}
	for _, p := range []fix.Pass{
		&fix.Collision{Suffix: cfg.Collision.Suffix, Extensions: cfg.Collision.Extensions},
		&fix.IndexedFaceSet{Suffix: cfg.Collision.Suffix, CreaseAngle: cfg.IFS.CreaseAngle, Precision: cfg.IFS.Precision},
		&fix.SolidReference{Marker: cfg.SolidRef.Marker, Suffix: cfg.SolidRef.Suffix, Field: cfg.SolidRef.Field},
		&fix.MotorTorque{StageThreshold: cfg.Motor.StageThreshold, MaxTorque: cfg.Motor.MaxTorque},
	} {
		res[p.Name()] = p
	}
	return res
}

// EnabledPasses returns the enabled edit passes in the order they run.  The
// mesh url pass depends on the robot directory and is added by Run.
func (cfg *Config) EnabledPasses() []fix.Pass {
	all := cfg.AllPasses()
	var res []fix.Pass
	if cfg.Passes.Collision {
		res = append(res, all["collision"])
	}
	if cfg.Passes.IFS {
		res = append(res, all["ifs"])
	}
	if cfg.Passes.SolidRef {
		res = append(res, all["solid-reference"])
	}
	if cfg.Passes.Motor {
		res = append(res, all["motor-torque"])
	}
	return res
}

// SelectPasses returns the passes named in names, in that order.
func (cfg *Config) SelectPasses(names []string) ([]fix.Pass, error) {
	all := cfg.AllPasses()
	res := make([]fix.Pass, 0, len(names))
	for _, n := range names {
		p, ok := all[n]
		if !ok {
			return nil, fmt.Errorf("unknown pass %q", n)
		}
		res = append(res, p)
	}
	return res, nil
}

// SetDir resolves the mesh urls read by passes against dir, the directory
// of the proto file.
func SetDir(passes []fix.Pass, dir string) {
	for _, p := range passes {
		if ifs, ok := p.(*fix.IndexedFaceSet); ok {
			ifs.Dir = dir
		}
	}
}
