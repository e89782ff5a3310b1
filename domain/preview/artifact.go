package preview

// StrategyCopy identifies a clip produced by container-level stream copy,
// without re-encoding the audio or video payloads.
const StrategyCopy = "copy"

// Artifact describes a preview clip that was successfully produced.
// Ownership passes to the caller; the caller is responsible for asking for
// its removal when the preview is no longer needed.
type Artifact struct {
	OutputPath string
	Duration   float64
	Strategy   string
}
