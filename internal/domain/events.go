package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScanRequested      EventType = "ScanRequested"
	EventScanStarted        EventType = "ScanStarted"
	EventItemsScanned       EventType = "ItemsScanned"
	EventScanCompleted      EventType = "ScanCompleted"
	EventError              EventType = "Error"
	EventSelectionChanged   EventType = "SelectionChanged"
	EventSelectionConfirmed EventType = "SelectionConfirmed"
	EventModifiersChanged   EventType = "ModifiersChanged"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScanRequestedEvent asks the discovery service to list a directory.
// Seq increases with every request from the same sender; a request older
// than one already started is dropped.
type ScanRequestedEvent struct {
	Root string
	Seq  uint64
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// ScanStartedEvent is emitted when listing a directory begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ItemsScannedEvent carries the full listing of one directory
type ItemsScannedEvent struct {
	Root  string
	Items []Item
}

func (e ItemsScannedEvent) Type() EventType { return EventItemsScanned }

// ScanCompletedEvent is emitted when listing a directory completes
type ScanCompletedEvent struct {
	Root       string
	ItemsFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// SelectionChangedEvent mirrors a selection change notification
type SelectionChangedEvent struct {
	Selected   []string
	Deselected []string
	Total      int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionConfirmedEvent is emitted when the user accepts the selection
type SelectionConfirmedEvent struct {
	Paths []string
}

func (e SelectionConfirmedEvent) Type() EventType { return EventSelectionConfirmed }

// ModifiersChangedEvent is emitted when a held modifier changes
type ModifiersChangedEvent struct {
	RangeHeld bool
	MultiHeld bool
}

func (e ModifiersChangedEvent) Type() EventType { return EventModifiersChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
