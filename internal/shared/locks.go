package shared

import "fmt"

// IdempotencyKey builds the redis key guarding a client supplied request key.
func IdempotencyKey(module, key string) string {
	return fmt.Sprintf("stockledger:%s:idempotency:%s", module, key)
}
