package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing.
var (
	TestSessionID1  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestSessionID2  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestSanctionID1 = uuid.MustParse("00000000-0000-0000-0000-000000000030")
)

// Well-known customer records used across test suites.
const (
	TestCustomerPhone = "9876543210"
	TestCustomerName  = "Rahul Sharma"
	TestCustomerDOB   = "1990-04-12"
	TestCustomerAddr  = "14 MG Road, Bengaluru"
)
