package blobs

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ComputeCID returns the CIDv1 (raw codec, sha2-256) of data in its default base32 form.
// Identical bytes map to the same CID, so re-uploads overwrite instead of duplicating.
func ComputeCID(data []byte) (string, error) {
	builder := cid.V1Builder{
		Codec:    cid.Raw,
		MhType:   multihash.SHA2_256,
		MhLength: -1,
	}

	c, err := builder.Sum(data)
	if err != nil {
		return "", fmt.Errorf("failed to compute CID: %w", err)
	}
	return c.String(), nil
}

// ObjectKey builds the storage key for a user's photo
func ObjectKey(userID int64, contentID string) string {
	return fmt.Sprintf("photos/%d/%s.jpg", userID, contentID)
}
