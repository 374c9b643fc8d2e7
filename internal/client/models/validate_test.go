package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      any
		wantErr string
	}{
		{
			name: "valid inbound",
			in:   InboundRequest{Item: 1, Quantity: 3, Warehouse: 2, Supplier: 4},
		},
		{
			name:    "zero quantity",
			in:      InboundRequest{Item: 1, Warehouse: 2, Supplier: 4},
			wantErr: "quantity: 必填",
		},
		{
			name:    "missing recipient",
			in:      &OutboundRequest{Item: 1, Quantity: 1},
			wantErr: "recipient: 必填",
		},
		{
			name:    "password mismatch",
			in:      RegisterRequest{Username: "u", Password: "secret1", PasswordConfirm: "secret2"},
			wantErr: "password_confirm: 两次输入不一致",
		},
		{
			name:    "short password",
			in:      ChangePasswordRequest{OldPassword: "a", NewPassword: "abc", NewPasswordConfirm: "abc"},
			wantErr: "new_password: 不能小于 6",
		},
		{
			name:    "empty batch",
			in:      BatchDeleteRequest{Password: "p"},
			wantErr: "ids: 必填",
		},
		{
			name:    "bad email",
			in:      SupplierInput{Name: "s", Email: "nope"},
			wantErr: "email: 邮箱格式不正确",
		},
		{
			name: "maps are not checked",
			in:   map[string]any{"stock": -1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
