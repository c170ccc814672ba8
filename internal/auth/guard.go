package auth

import "medidocs/internal/model"

// Package auth holds the single authorization authority for documents.
// Every entry point that touches a document consults Decide (or CanUpload)
// before acting; nothing else in the codebase re-implements the rule.

// Capability is a coarse permission an actor holds. An actor may hold
// several at once.
type Capability string

const (
	CapPatient Capability = "PATIENT"
	CapAdmin   Capability = "ADMIN"
)

// Operation is a guarded action on an existing document.
type Operation string

const (
	OpRead     Operation = "read"
	OpDownload Operation = "download"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
)

// Decision is the binary outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Actor is the authenticated caller as seen by the document core: an
// opaque id plus its capability set. Account state (credentials, ban
// flags) belongs to the external authentication collaborator.
type Actor struct {
	ID           string
	Capabilities []Capability
}

// Has reports whether the actor holds the given capability.
func (a Actor) Has(c Capability) bool {
	for _, have := range a.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Decide evaluates actor against doc for op. Admins may perform every
// operation; a patient may act only on documents they own. No side
// effects, no storage access.
func Decide(actor Actor, op Operation, doc model.Document) Decision {
	if actor.Has(CapAdmin) {
		return Allow
	}
	if actor.Has(CapPatient) && actor.ID != "" && actor.ID == doc.OwnerID {
		return Allow
	}
	return Deny
}

// CanUpload reports whether the actor may create new documents. Uploads
// are always stored under the actor's own id regardless of any
// client-supplied owner, so only the Patient capability matters here.
func CanUpload(actor Actor) bool {
	return actor.Has(CapPatient)
}
