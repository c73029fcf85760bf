package console

import "fmt"

func parseState(text []byte, names []string) (int, error) {
	for i, name := range names {
		if name == string(text) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", text)
}

// InventoryState is the lifecycle of the document inventory panel
type InventoryState int

const (
	InventoryIdle InventoryState = iota
	InventoryLoading
	InventoryPopulated
	InventoryEmpty
	InventoryFailed
)

var inventoryStateNames = [...]string{"idle", "loading", "populated", "empty", "failed"}

func (s InventoryState) String() string {
	if int(s) < len(inventoryStateNames) {
		return inventoryStateNames[s]
	}
	return "unknown"
}

func (s InventoryState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *InventoryState) UnmarshalText(text []byte) error {
	i, err := parseState(text, inventoryStateNames[:])
	*s = InventoryState(i)
	return err
}

// UploadState is the lifecycle of the upload control. Success and Failed are
// resting states: a new submission is accepted from them just as from Idle.
type UploadState int

const (
	UploadIdle UploadState = iota
	UploadUploading
	UploadSuccess
	UploadFailed
)

var uploadStateNames = [...]string{"idle", "uploading", "success", "failed"}

func (s UploadState) String() string {
	if int(s) < len(uploadStateNames) {
		return uploadStateNames[s]
	}
	return "unknown"
}

func (s UploadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *UploadState) UnmarshalText(text []byte) error {
	i, err := parseState(text, uploadStateNames[:])
	*s = UploadState(i)
	return err
}

// QAState is the lifecycle of the question panel. Rendered and Failed are
// resting states like Idle.
type QAState int

const (
	QAIdle QAState = iota
	QASubmitting
	QARendered
	QAFailed
)

var qaStateNames = [...]string{"idle", "submitting", "rendered", "failed"}

func (s QAState) String() string {
	if int(s) < len(qaStateNames) {
		return qaStateNames[s]
	}
	return "unknown"
}

func (s QAState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *QAState) UnmarshalText(text []byte) error {
	i, err := parseState(text, qaStateNames[:])
	*s = QAState(i)
	return err
}

// StatusKind classifies a status line for styling
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)
