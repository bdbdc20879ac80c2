// Package sbom emits the SPDX 2.3 document describing the MLIR binary
// builds (mlir-translate and the MLIR Python bindings) that ship inside
// the vgf-adapter-model-explorer wheel, together with the LLVM sources
// and model-converter patch they were built from.
package sbom

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	armOrg = "Organization: Arm Limited (open-source-office@arm.com)"

	llvmLicense = "Apache-2.0 with LLVM-exception"

	disclaimer = `THIS SOFTWARE BILL OF MATERIALS ("SBOM") IS PROVIDED BY ARM LIMITED ` +
		`"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES ARE DISCLAIMED. IN NO EVENT ` +
		`SHALL ARM LIMITED BE LIABLE FOR ANY DAMAGES ARISING IN ANY WAY OUT OF THE ` +
		`USE OF THIS SBOM.`
)

// BuildInfo identifies one MLIR binary build.
type BuildInfo struct {
	LLVMRef           string
	ModelConverterRef string
	WheelVersion      string
	BuildTime         time.Time
}

// binaryVersion is the version stamped on the shipped binaries:
// wheel version, both source refs, and the UTC build time.
func (b BuildInfo) binaryVersion() string {
	return fmt.Sprintf("%s-llvm-%s-model_converter-%s-%s",
		b.WheelVersion, b.LLVMRef, b.ModelConverterRef,
		b.BuildTime.UTC().Format("20060102-150405"))
}

// CreationInfo is the SPDX creation block.
type CreationInfo struct {
	Created        string   `json:"created"`
	Creators       []string `json:"creators"`
	CreatorComment string   `json:"comment,omitempty"`
}

// Package is an SPDX package entry.
type Package struct {
	Name                  string `json:"name"`
	SPDXID                string `json:"SPDXID"`
	VersionInfo           string `json:"versionInfo"`
	DownloadLocation      string `json:"downloadLocation"`
	FilesAnalyzed         bool   `json:"filesAnalyzed"`
	LicenseDeclared       string `json:"licenseDeclared"`
	PrimaryPackagePurpose string `json:"primaryPackagePurpose"`
	Description           string `json:"description,omitempty"`
	Originator            string `json:"originator,omitempty"`
}

// Relationship links two SPDX elements.
type Relationship struct {
	SPDXElementID      string `json:"spdxElementId"`
	RelationshipType   string `json:"relationshipType"`
	RelatedSPDXElement string `json:"relatedSpdxElement"`
}

// Document is an SPDX 2.3 document in its JSON serialization shape.
type Document struct {
	SPDXVersion       string         `json:"spdxVersion"`
	DataLicense       string         `json:"dataLicense"`
	SPDXID            string         `json:"SPDXID"`
	Name              string         `json:"name"`
	DocumentNamespace string         `json:"documentNamespace"`
	CreationInfo      CreationInfo   `json:"creationInfo"`
	Packages          []Package      `json:"packages"`
	Relationships     []Relationship `json:"relationships"`
}

// NewDocument builds the SPDX document for one MLIR binary build.
func NewDocument(info BuildInfo) *Document {
	binVersion := info.binaryVersion()
	namespace := fmt.Sprintf(
		"https://arm.com/spdx/vgf-adapter-model-explorer-mlir-llvm-%s-model_converter-%s-%s-%s",
		info.LLVMRef, info.ModelConverterRef,
		info.BuildTime.UTC().Format("20060102-150405"), uuid.NewString())

	doc := &Document{
		SPDXVersion:       "SPDX-2.3",
		DataLicense:       "CC0-1.0",
		SPDXID:            "SPDXRef-DOCUMENT",
		Name:              "vgf-adapter-model-explorer-mlir-builds-with-llvm-model-converter-patch",
		DocumentNamespace: namespace,
		CreationInfo: CreationInfo{
			Created:        info.BuildTime.UTC().Format(time.RFC3339),
			Creators:       []string{armOrg},
			CreatorComment: disclaimer,
		},
		Packages: []Package{
			{
				Name:                  "llvm",
				SPDXID:                "SPDXRef-LLVM",
				VersionInfo:           info.LLVMRef,
				DownloadLocation:      "https://github.com/llvm/llvm-project",
				LicenseDeclared:       llvmLicense,
				PrimaryPackagePurpose: "LIBRARY",
				Description:           "Base LLVM package used for MLIR builds.",
			},
			{
				Name:                  "model-converter",
				SPDXID:                "SPDXRef-ModelConverter",
				VersionInfo:           info.ModelConverterRef,
				DownloadLocation:      "https://github.com/ARM-software/model-converter",
				LicenseDeclared:       "Apache-2.0",
				PrimaryPackagePurpose: "OTHER",
				Description:           "Package providing an LLVM patch for model conversion tooling.",
				Originator:            armOrg,
			},
			{
				Name:                  "mlir-translate",
				SPDXID:                "SPDXRef-MLIRTranslateBin",
				VersionInfo:           binVersion,
				DownloadLocation:      "https://pypi.org/project/vgf-adapter-model-explorer/",
				LicenseDeclared:       llvmLicense,
				PrimaryPackagePurpose: "APPLICATION",
				Description:           "Binary build of mlir-translate tool, distributed as part of vgf-adapter-model-explorer Python wheel.",
				Originator:            armOrg,
			},
			{
				Name:                  "mlir-python-bindings",
				SPDXID:                "SPDXRef-MLIRPyBindingsBin",
				VersionInfo:           binVersion,
				DownloadLocation:      "https://pypi.org/project/vgf-adapter-model-explorer/",
				LicenseDeclared:       llvmLicense,
				PrimaryPackagePurpose: "APPLICATION",
				Description:           "Binary build of MLIR Python Bindings, distributed as part of vgf-adapter-model-explorer Python wheel.",
				Originator:            armOrg,
			},
		},
		Relationships: []Relationship{
			{"SPDXRef-DOCUMENT", "DESCRIBES", "SPDXRef-MLIRTranslateBin"},
			{"SPDXRef-DOCUMENT", "DESCRIBES", "SPDXRef-MLIRPyBindingsBin"},
			{"SPDXRef-LLVM", "PATCH_APPLIED", "SPDXRef-ModelConverter"},
			{"SPDXRef-MLIRTranslateBin", "DEPENDS_ON", "SPDXRef-LLVM"},
			{"SPDXRef-MLIRTranslateBin", "DEPENDS_ON", "SPDXRef-ModelConverter"},
			{"SPDXRef-MLIRPyBindingsBin", "DEPENDS_ON", "SPDXRef-LLVM"},
			{"SPDXRef-MLIRPyBindingsBin", "DEPENDS_ON", "SPDXRef-ModelConverter"},
		},
	}
	return doc
}

// Validate checks the document structurally and returns one message
// per problem. An empty slice means the document is well formed.
func (d *Document) Validate() []string {
	var msgs []string

	if d.SPDXVersion != "SPDX-2.3" {
		msgs = append(msgs, fmt.Sprintf("unexpected spdxVersion %q", d.SPDXVersion))
	}
	if d.SPDXID != "SPDXRef-DOCUMENT" {
		msgs = append(msgs, fmt.Sprintf("document SPDXID must be SPDXRef-DOCUMENT, got %q", d.SPDXID))
	}
	if d.Name == "" {
		msgs = append(msgs, "document name is empty")
	}
	if d.DocumentNamespace == "" {
		msgs = append(msgs, "document namespace is empty")
	}
	if len(d.CreationInfo.Creators) == 0 {
		msgs = append(msgs, "creation info has no creators")
	}
	if d.CreationInfo.Created == "" {
		msgs = append(msgs, "creation info has no created timestamp")
	}

	ids := map[string]struct{}{d.SPDXID: {}}
	for _, p := range d.Packages {
		if p.Name == "" {
			msgs = append(msgs, fmt.Sprintf("package %s has no name", p.SPDXID))
		}
		if p.SPDXID == "" {
			msgs = append(msgs, fmt.Sprintf("package %q has no SPDXID", p.Name))
			continue
		}
		if _, dup := ids[p.SPDXID]; dup {
			msgs = append(msgs, fmt.Sprintf("duplicate SPDXID %q", p.SPDXID))
		}
		ids[p.SPDXID] = struct{}{}
		if p.DownloadLocation == "" {
			msgs = append(msgs, fmt.Sprintf("package %q has no download location", p.Name))
		}
	}

	for _, r := range d.Relationships {
		if _, ok := ids[r.SPDXElementID]; !ok {
			msgs = append(msgs, fmt.Sprintf("relationship references unknown element %q", r.SPDXElementID))
		}
		if _, ok := ids[r.RelatedSPDXElement]; !ok {
			msgs = append(msgs, fmt.Sprintf("relationship references unknown element %q", r.RelatedSPDXElement))
		}
	}

	return msgs
}

// WriteFile writes the document as indented JSON, creating parent
// directories as needed.
func (d *Document) WriteFile(path string) error {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode SPDX document: %w", err)
	}
	out = append(out, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
