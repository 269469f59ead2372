package buildconfig

import (
	"encoding/json"
	"fmt"

	"github.com/minio/crc64nvme"
	"github.com/mr-tron/base58"
)

// Fingerprint returns a base58 CRC64-NVME digest of the canonical JSON form of cfg.
// Map keys are sorted by encoding/json so equal configs always hash the same.
func Fingerprint(cfg Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	h := crc64nvme.New()
	h.Write(data)

	return base58.Encode(h.Sum(nil)), nil
}
