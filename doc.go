// Package parcelform provides the data model for validating shipment requests:
//
// - Category, the packageType discriminator that selects a rule set
// - RawInput as collected by a form, and the normalized Shipment record
// - A stable error model via Issues (field, code, message) and CategoryError
//
// Design policy:
//   - Keep only public types in the root package; put rule evaluation under schema/.
//   - Place the add-on service catalog under services/, numeric coercion under
//     codec/, JSON request decoding under source/ and the CLI under cmd/parcelform.
//   - Field issues are collected exhaustively; an unknown Category is fatal.
//
// Typical usage:
//
//	opts, err := services.Synchronize(parcelform.Standard)
//	raw, err := source.DecodeRaw(data)
//	sh, err := schema.Validate(ctx, raw.PackageType, raw)
//	if iss, ok := parcelform.AsIssues(err); ok {
//		// show iss per field
//	}
package parcelform
