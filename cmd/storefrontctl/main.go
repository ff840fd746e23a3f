// Command storefrontctl is the operator CLI of the storefront: it promotes
// administrators, seeds categories and inspects orders against the
// configured database.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
