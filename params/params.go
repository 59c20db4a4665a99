// Package params holds the YAML-configurable interpolation parameters.
package params

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/oceanmesh/gomesh/interp"
	"github.com/oceanmesh/gomesh/types"
)

// InterpParameters are the settings obtained from the YAML input file.
type InterpParameters struct {
	Title              string  `yaml:"Title"`
	DeleteValue        float64 `yaml:"DeleteValue"`
	CircularType       string  `yaml:"CircularType"` // Normal, Degrees180, Degrees360, RadiansPi, Radians2Pi
	ChopMode           string  `yaml:"ChopMode"`     // Abrupt or Smoothed
	SourceKind         string  `yaml:"SourceKind"`   // ElementsAndNodes or Nodes
	Tolerance          float64 `yaml:"Tolerance"`
	AllowExtrapolation bool    `yaml:"AllowExtrapolation"`
}

func (ip *InterpParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InterpParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5g\t\t= DeleteValue\n", ip.DeleteValue)
	fmt.Printf("[%s]\t\t= CircularType\n", ip.CircularType)
	fmt.Printf("[%s]\t\t= ChopMode\n", ip.ChopMode)
	fmt.Printf("[%s]\t= SourceKind\n", ip.SourceKind)
	fmt.Printf("%8.5g\t\t= Tolerance\n", ip.Tolerance)
	fmt.Printf("[%v]\t\t= AllowExtrapolation\n", ip.AllowExtrapolation)
}

// Config converts the parameters into an interpolation configuration,
// filling unset fields with the defaults.
func (ip *InterpParameters) Config() (cfg interp.Config) {
	cfg = interp.DefaultConfig()
	if ip.DeleteValue != 0 {
		cfg.DeleteValue = ip.DeleteValue
	}
	if ip.CircularType != "" {
		cfg.Circular = types.ParseCircularName(ip.CircularType)
	}
	if ip.ChopMode != "" {
		cfg.Chop = interp.ParseChopName(ip.ChopMode)
	}
	if ip.SourceKind != "" {
		cfg.Source = interp.ParseSourceName(ip.SourceKind)
	}
	cfg.Tolerance = ip.Tolerance
	cfg.AllowExtrapolation = ip.AllowExtrapolation
	return
}
