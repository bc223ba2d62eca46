package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rshade/accountdesk/internal/account"
)

// Payload keys.
const (
	keyRefresh  = "refresh"
	keyAccounts = "accounts"
	keyIDs      = "ids"
	keyMessages = "messages"
)

var errMalformed = errors.New("malformed payload")

func accountToValue(a account.Account) *structpb.Value {
	fields := map[string]*structpb.Value{
		account.FieldID:      structpb.NewStringValue(a.ID),
		account.FieldName:    structpb.NewStringValue(a.Name),
		account.FieldPhone:   structpb.NewStringValue(a.Phone),
		account.FieldOwnerID: structpb.NewStringValue(a.OwnerID),
		account.FieldLevel:   structpb.NewStringValue(string(a.Level)),
	}
	if a.LastModifiedBy != nil {
		fields["LastModifiedBy"] = structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{"Name": structpb.NewStringValue(a.LastModifiedBy.Name)},
		})
	}
	return structpb.NewStructValue(&structpb.Struct{Fields: fields})
}

func accountFromValue(v *structpb.Value) (account.Account, error) {
	s := v.GetStructValue()
	if s == nil {
		return account.Account{}, fmt.Errorf("%w: account is not an object", errMalformed)
	}
	f := s.GetFields()
	a := account.Account{
		ID:      f[account.FieldID].GetStringValue(),
		Name:    f[account.FieldName].GetStringValue(),
		Phone:   f[account.FieldPhone].GetStringValue(),
		OwnerID: f[account.FieldOwnerID].GetStringValue(),
		Level:   account.Level(f[account.FieldLevel].GetStringValue()),
	}
	if a.ID == "" {
		return account.Account{}, fmt.Errorf("%w: account without %s", errMalformed, account.FieldID)
	}
	if by := f["LastModifiedBy"].GetStructValue(); by != nil {
		a.LastModifiedBy = &account.User{Name: by.GetFields()["Name"].GetStringValue()}
	}
	return a, nil
}

func encodeAccounts(recs []account.Account) *structpb.Struct {
	values := make([]*structpb.Value, len(recs))
	for i, rec := range recs {
		values[i] = accountToValue(rec)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyAccounts: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

func decodeAccounts(s *structpb.Struct) ([]account.Account, error) {
	list := s.GetFields()[keyAccounts].GetListValue()
	out := make([]account.Account, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		a, err := accountFromValue(v)
		if err != nil {
			return nil, fmt.Errorf("accounts[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func encodeStrings(key string, items []string) *structpb.Struct {
	values := make([]*structpb.Value, len(items))
	for i, item := range items {
		values[i] = structpb.NewStringValue(item)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		key: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

func decodeStrings(s *structpb.Struct, key string) ([]string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", errMalformed, key)
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: %q is not a list", errMalformed, key)
	}
	out := make([]string, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		str, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not a string", errMalformed, key, i)
		}
		out = append(out, str.StringValue)
	}
	return out, nil
}
