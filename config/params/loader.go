package params

import (
	"encoding/hex"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// LoadChainConfigFile reads a standard eth2 spec YAML file and overlays the
// values it defines on top of the given base config. A nil base starts from
// mainnet. Unknown keys are ignored so preset files carrying epoch-processing
// constants load cleanly.
func LoadChainConfigFile(path string, base *BeaconChainConfig) (*BeaconChainConfig, error) {
	yamlFile, err := os.ReadFile(path) // #nosec G304 -- caller controls the path
	if err != nil {
		return nil, errors.Wrap(err, "could not read chain config file")
	}
	if base == nil {
		base = MainnetConfig()
	}
	conf := base.Copy()
	if err := UnmarshalConfig(yamlFile, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// UnmarshalConfig overlays raw spec YAML onto conf in place. Values are
// matched by the struct's yaml tags; hex strings map onto byte slices and
// fixed-size byte arrays (fork versions, domain types).
func UnmarshalConfig(raw []byte, conf *BeaconChainConfig) error {
	into := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &into); err != nil {
		return errors.Wrap(err, "could not unmarshal chain config")
	}

	val := reflect.ValueOf(conf).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		tag := strings.Split(typ.Field(i).Tag.Get("yaml"), ",")[0]
		if tag == "" {
			continue
		}
		rawVal, ok := into[tag]
		if !ok {
			continue
		}
		if err := setConfigField(val.Field(i), rawVal); err != nil {
			return errors.Wrapf(err, "could not set %s", tag)
		}
	}
	return nil
}

func setConfigField(field reflect.Value, rawVal interface{}) error {
	switch field.Kind() {
	case reflect.Uint64, reflect.Uint8:
		u, err := asUint64(rawVal)
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.String:
		s, ok := rawVal.(string)
		if !ok {
			return errors.Errorf("expected string, got %T", rawVal)
		}
		field.SetString(s)
	case reflect.Slice:
		b, err := asBytes(rawVal)
		if err != nil {
			return err
		}
		field.SetBytes(b)
	case reflect.Array:
		b, err := asBytes(rawVal)
		if err != nil {
			return err
		}
		if len(b) != field.Len() {
			return errors.Errorf("expected %d bytes, got %d", field.Len(), len(b))
		}
		reflect.Copy(field, reflect.ValueOf(b))
	default:
		return errors.Errorf("unsupported config field kind %s", field.Kind())
	}
	return nil
}

func asUint64(rawVal interface{}) (uint64, error) {
	switch v := rawVal.(type) {
	case float64:
		return uint64(v), nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	default:
		return 0, errors.Errorf("expected integer, got %T", rawVal)
	}
}

func asBytes(rawVal interface{}) ([]byte, error) {
	s, ok := rawVal.(string)
	if !ok {
		return nil, errors.Errorf("expected hex string, got %T", rawVal)
	}
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
