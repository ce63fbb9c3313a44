package controller

import "github.com/csg33k/employee-manager/internal/domain"

type IntentKind int

const (
	IntentLoad IntentKind = iota
	IntentSearchChanged
	IntentSearchCleared
	IntentFilterChanged
	IntentSortChanged
	IntentAddRequested
	IntentEditRequested
	IntentDeleteRequested
	IntentFormSubmitted
	IntentModalClosed
	IntentNotificationDismissed
)

var intentNames = [...]string{
	IntentLoad:                  "load",
	IntentSearchChanged:         "search-changed",
	IntentSearchCleared:         "search-cleared",
	IntentFilterChanged:         "filter-changed",
	IntentSortChanged:           "sort-changed",
	IntentAddRequested:          "add-requested",
	IntentEditRequested:         "edit-requested",
	IntentDeleteRequested:       "delete-requested",
	IntentFormSubmitted:         "form-submitted",
	IntentModalClosed:           "modal-closed",
	IntentNotificationDismissed: "notification-dismissed",
}

func (k IntentKind) String() string {
	if k < 0 || int(k) >= len(intentNames) {
		return "unknown"
	}
	return intentNames[k]
}

// Intent is one user action. Only the fields relevant to Kind are set:
// Value carries search text, a department, a sort key or a notification
// id; ID names a record; Form carries the submitted modal fields.
type Intent struct {
	Kind  IntentKind
	Value string
	ID    domain.ID
	Form  Form
}

func Load() Intent {
	return Intent{Kind: IntentLoad}
}

func SearchChanged(text string) Intent {
	return Intent{Kind: IntentSearchChanged, Value: text}
}

func SearchCleared() Intent {
	return Intent{Kind: IntentSearchCleared}
}

func FilterChanged(dept string) Intent {
	return Intent{Kind: IntentFilterChanged, Value: dept}
}

func SortChanged(key string) Intent {
	return Intent{Kind: IntentSortChanged, Value: key}
}

func AddRequested() Intent {
	return Intent{Kind: IntentAddRequested}
}

func EditRequested(id domain.ID) Intent {
	return Intent{Kind: IntentEditRequested, ID: id}
}

// DeleteRequested must only be dispatched after the user confirmed.
func DeleteRequested(id domain.ID) Intent {
	return Intent{Kind: IntentDeleteRequested, ID: id}
}

func FormSubmitted(f Form) Intent {
	return Intent{Kind: IntentFormSubmitted, Form: f}
}

func ModalClosed() Intent {
	return Intent{Kind: IntentModalClosed}
}

func NotificationDismissed(id string) Intent {
	return Intent{Kind: IntentNotificationDismissed, Value: id}
}
