// Package datastore contains the Datastore bounded context.
// This context defines how the cart-validation system talks to external
// order/inventory management services.
//
// Key concepts:
//   - DataStore: Port interface for vendor order/inventory services (OrderDesk)
//   - Credentials: Resolved store credentials, immutable after construction
//   - CheckoutOrder: Value object for the upstream checkout-completed payload
//   - InventoryItem / CanonicalItem: Vendor inventory record and the item
//     shape consumed by the cart validator
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package datastore
