// Command budget is the command-line front end of the budget ledger.
//
//	budget category add Food --budget 300
//	budget tx add Food 12.50 --desc lunch
//	budget report Food
//	budget weekly Food
//	budget shell
package main

import "github.com/warp/budget-ledger/cli"

func main() {
	cli.Execute()
}
