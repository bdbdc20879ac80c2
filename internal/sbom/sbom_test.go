package sbom

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBuildInfo() BuildInfo {
	return BuildInfo{
		LLVMRef:           "llvmorg-19.1.0",
		ModelConverterRef: "v0.4.0",
		WheelVersion:      "1.2.3",
		BuildTime:         time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(sampleBuildInfo())

	t.Run("carries the four build packages", func(t *testing.T) {
		require.Len(t, doc.Packages, 4)

		byID := map[string]Package{}
		for _, p := range doc.Packages {
			byID[p.SPDXID] = p
		}
		assert.Equal(t, "llvmorg-19.1.0", byID["SPDXRef-LLVM"].VersionInfo)
		assert.Equal(t, "v0.4.0", byID["SPDXRef-ModelConverter"].VersionInfo)

		wantBin := "1.2.3-llvm-llvmorg-19.1.0-model_converter-v0.4.0-20250601-123045"
		assert.Equal(t, wantBin, byID["SPDXRef-MLIRTranslateBin"].VersionInfo)
		assert.Equal(t, wantBin, byID["SPDXRef-MLIRPyBindingsBin"].VersionInfo)
	})

	t.Run("carries the describe/patch/depends relationships", func(t *testing.T) {
		require.Len(t, doc.Relationships, 7)
		assert.Equal(t, Relationship{
			SPDXElementID:      "SPDXRef-LLVM",
			RelationshipType:   "PATCH_APPLIED",
			RelatedSPDXElement: "SPDXRef-ModelConverter",
		}, doc.Relationships[2])
	})

	t.Run("namespace embeds refs, build time and a unique suffix", func(t *testing.T) {
		assert.Contains(t, doc.DocumentNamespace, "llvmorg-19.1.0")
		assert.Contains(t, doc.DocumentNamespace, "model_converter-v0.4.0")
		assert.Contains(t, doc.DocumentNamespace, "20250601-123045")

		other := NewDocument(sampleBuildInfo())
		assert.NotEqual(t, doc.DocumentNamespace, other.DocumentNamespace)
	})

	t.Run("validates cleanly", func(t *testing.T) {
		assert.Empty(t, doc.Validate())
	})
}

func TestDocumentValidate(t *testing.T) {
	t.Run("flags duplicate SPDXIDs", func(t *testing.T) {
		doc := NewDocument(sampleBuildInfo())
		doc.Packages[1].SPDXID = doc.Packages[0].SPDXID

		msgs := doc.Validate()
		require.NotEmpty(t, msgs)
		assert.Contains(t, strings.Join(msgs, "\n"), "duplicate SPDXID")
	})

	t.Run("flags relationships to unknown elements", func(t *testing.T) {
		doc := NewDocument(sampleBuildInfo())
		doc.Relationships = append(doc.Relationships, Relationship{
			SPDXElementID:      "SPDXRef-DOCUMENT",
			RelationshipType:   "DESCRIBES",
			RelatedSPDXElement: "SPDXRef-Ghost",
		})

		msgs := doc.Validate()
		require.NotEmpty(t, msgs)
		assert.Contains(t, strings.Join(msgs, "\n"), "SPDXRef-Ghost")
	})

	t.Run("flags missing creation info", func(t *testing.T) {
		doc := NewDocument(sampleBuildInfo())
		doc.CreationInfo.Creators = nil

		msgs := doc.Validate()
		require.NotEmpty(t, msgs)
		assert.Contains(t, strings.Join(msgs, "\n"), "creators")
	})
}

func TestDocumentWriteFile(t *testing.T) {
	doc := NewDocument(sampleBuildInfo())
	path := filepath.Join(t.TempDir(), "sbom", "mlir-builds.spdx.json")
	require.NoError(t, doc.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "SPDX-2.3", decoded.SPDXVersion)
	assert.Equal(t, "CC0-1.0", decoded.DataLicense)
	assert.Len(t, decoded.Packages, 4)
	assert.Len(t, decoded.Relationships, 7)
}
