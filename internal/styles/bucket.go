// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package styles

// EvidenceBucket is the enumerated severity classification of an evidence
// score. Classification happens exactly once, when a finding is built;
// everything downstream (messages, filtering, formatting) keys on the
// bucket, never on the raw float.
type EvidenceBucket int

const (
	BucketLow EvidenceBucket = iota
	BucketMedium
	BucketHigh
)

// Bucket thresholds. Scores are in [0,1].
const (
	highEvidenceFloor   = 0.8
	mediumEvidenceFloor = 0.5
)

// ClassifyEvidence maps an evidence score to its bucket.
func ClassifyEvidence(score float64) EvidenceBucket {
	switch {
	case score >= highEvidenceFloor:
		return BucketHigh
	case score >= mediumEvidenceFloor:
		return BucketMedium
	default:
		return BucketLow
	}
}

func (b EvidenceBucket) String() string {
	switch b {
	case BucketHigh:
		return "high"
	case BucketMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseBucket converts a severity name back to a bucket. Unknown names
// map to BucketLow so severity filters fail open rather than dropping
// findings silently.
func ParseBucket(name string) EvidenceBucket {
	switch name {
	case "high":
		return BucketHigh
	case "medium":
		return BucketMedium
	default:
		return BucketLow
	}
}

// Clamp01 bounds a score to [0,1]. Every evidence aggregation step in the
// repository clamps through this so intermediate overflow can never leak
// into a later step.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
