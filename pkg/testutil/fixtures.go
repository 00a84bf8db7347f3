package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestOutletID   = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestCustomerID = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestProductID1 = uuid.MustParse("00000000-0000-0000-0000-000000000020")
	TestProductID2 = uuid.MustParse("00000000-0000-0000-0000-000000000021")
	TestInvoiceID  = uuid.MustParse("00000000-0000-0000-0000-000000000030")
	TestPaymentID  = uuid.MustParse("00000000-0000-0000-0000-000000000040")
)
