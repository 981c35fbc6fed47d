package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainGraph     = "sortflow/graph/v1"
	DomainPartition = "sortflow/partition/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// GraphHash computes a content-addressed ID for a workflow graph.
// Two graphs with the same entry and the same rules hash identically
// regardless of declaration order.
func GraphHash(g Graph) (string, error) {
	canonical, err := MarshalCanonical(g.Canonical())
	if err != nil {
		return "", fmt.Errorf("GraphHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainGraph, canonical), nil
}

// RegionsHash computes a content-addressed ID for an ordered list of
// regions, used to compare partitions across runs.
func RegionsHash(regions []Region) (string, error) {
	list := make([]any, len(regions))
	for i, r := range regions {
		list[i] = r.Canonical()
	}
	canonical, err := MarshalCanonical(list)
	if err != nil {
		return "", fmt.Errorf("RegionsHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPartition, canonical), nil
}

// MustGraphHash is like GraphHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustGraphHash(g Graph) string {
	h, err := GraphHash(g)
	if err != nil {
		panic(err)
	}
	return h
}
