package device

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"

	"github.com/denisbrodbeck/machineid"
	"github.com/jaypipes/ghw"

	"aescrypt/internal/core/domain"
)

// Fingerprinter collects hardware-specific information used to stamp
// uploaded objects with the machine that produced them.
type Fingerprinter struct{}

func New() *Fingerprinter {
	return &Fingerprinter{}
}

// Stamp returns a fingerprint of the current machine. The stamp is stored
// in vault metadata for auditing; nothing is validated against it.
func (f *Fingerprinter) Stamp() (domain.DeviceStamp, error) {
	machineID, err := machineid.ID()
	if err != nil {
		return domain.DeviceStamp{}, fmt.Errorf("failed to get machine ID: %w", err)
	}

	cpu, err := ghw.CPU()
	if err != nil {
		return domain.DeviceStamp{}, fmt.Errorf("failed to get CPU info: %w", err)
	}

	memory, err := ghw.Memory()
	if err != nil {
		return domain.DeviceStamp{}, fmt.Errorf("failed to get memory info: %w", err)
	}

	hashInput := []string{
		machineID,
		cpu.Processors[0].Model,
		fmt.Sprintf("%d", memory.TotalPhysicalBytes),
		runtime.GOOS,
		runtime.GOARCH,
	}

	return domain.DeviceStamp{
		DeviceID:     machineID,
		HardwareHash: generateHash(strings.Join(hashInput, "|")),
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}, nil
}

func generateHash(input string) string {
	hash := sha256.New()
	hash.Write([]byte(input))
	return hex.EncodeToString(hash.Sum(nil))
}
