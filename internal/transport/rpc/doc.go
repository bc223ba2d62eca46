// Package rpc serves an account source over gRPC and provides a matching
// client. Messages are google.protobuf.Struct values, so no generated code is
// needed:
//
//	/accountdesk.v1.AccountService/ListAccounts    {"refresh": bool} -> {"accounts": [...]}
//	/accountdesk.v1.AccountService/UpdateAccounts  {"ids": [...]}    -> {"messages": [...]}
package rpc
