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
	"bufio"
	"io"
	"sync"
	"unicode"

	"github.com/bgallie/filters/lines"
	"github.com/spf13/cobra"

	"github.com/bgallie/rotorsim/cryptors/machines"
)

var wg sync.WaitGroup

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt text with the configured machine",
	Long: `Encrypt text with the machine held in the state file.  Input symbols
outside the machine's rotor alphabet are dropped, uppercase letters are
folded to lowercase, and the ciphertext is broken into lines.  The
advanced rotor positions are written back to the state file.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt()
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
}

func encrypt() {
	m := loadMachine()
	fin, fout := getInputAndOutputFiles()
	defer fout.Close()

	pr, pw := io.Pipe()
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer pw.Close()
		cipherText(m, fin, pw, machines.Machine.Encrypt)
	}()
	_, err := io.Copy(fout, lines.SplitToLines(pr))
	checkError(err)
	wg.Wait()
	saveMachine(m)
}

// cipherText drives every alphabet symbol of the input through the
// machine and writes the resulting symbols to the output.
func cipherText(m machines.Machine, in io.Reader, out io.Writer, crypt func(machines.Machine, int) int) {
	alpha := m.Alphabet()
	rdr := bufio.NewReader(in)
	wtr := bufio.NewWriter(out)
	defer wtr.Flush()
	for {
		r, _, err := rdr.ReadRune()
		if err != nil {
			checkError(err)
			return
		}
		r = unicode.ToLower(r)
		v, err := alpha.FromVal(r)
		if err != nil {
			continue
		}
		wtr.WriteRune(alpha.ToVal(crypt(m, v)))
	}
}
