package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

const (
	UUID_PREFIX_ACCOUNT            = "acc"
	UUID_PREFIX_PRODUCT            = "prod"
	UUID_PREFIX_SUBSCRIPTION       = "sub"
	UUID_PREFIX_SUBSCRIPTION_PHASE = "phase"
	UUID_PREFIX_SUBSCRIBED_PRODUCT = "subprod"
	UUID_PREFIX_INVOICE            = "inv"
	UUID_PREFIX_INVOICE_ITEM       = "item"
	UUID_PREFIX_CREDIT_ENTRY       = "cred"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateInvoiceNumber returns a short human friendly invoice number,
// e.g. INV-4XZQ8A.
func GenerateInvoiceNumber() string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	if len(id) > 8 {
		id = id[:8]
	}

	return strings.ToUpper(fmt.Sprintf("INV-%s", id))
}
