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

// Package main - rotorsim simulates the historical rotor cipher
// machines: the Enigma family, the SIGABA, the Typex, the KL7, the
// Nema and the Schlüsselgerät 39.
package main

import "github.com/bgallie/rotorsim/cmd"

func main() {
	cmd.Execute()
}
