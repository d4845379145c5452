package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultProfile is the template written by `sumpdump profile write`:
// the papilio pro defaults plus two example VCD values.
func DefaultProfile() Profile {
	return Profile{
		Device:       "/dev/ttyUSB1",
		BaudRate:     115200,
		Divisor:      1,
		Before:       4,
		ClkFreqHz:    100_000_000,
		SampleMemory: 1 << 16,
		NumProbes:    32,
		Values: []ValueSpec{
			{Name: "clock", Bits: []uint32{0x1}},
			{Name: "data", Bits: []uint32{0x6, 0x80}},
		},
	}
}

func Template() (string, error) {
	out, err := toml.Marshal(DefaultProfile())
	if err != nil {
		return "", fmt.Errorf("config template encode failed: %w", err)
	}
	return string(out), nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}
