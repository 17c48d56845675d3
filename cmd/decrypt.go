/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/bgallie/filters/lines"
	"github.com/spf13/cobra"

	"github.com/bgallie/rotorsim/cryptors/machines"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt text with the configured machine",
	Long: `Decrypt text with the machine held in the state file.  Line breaks
inserted by encrypt are removed before deciphering, and the advanced
rotor positions are written back to the state file.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt()
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}

func decrypt() {
	m := loadMachine()
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()

	cipherText(m, lines.CombineLines(fin), fout, machines.Machine.Decrypt)
	saveMachine(m)
}
