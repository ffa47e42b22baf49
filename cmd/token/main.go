package main

import (
	"DiningAPI/internal/auth"
	"DiningAPI/internal/env"
	"DiningAPI/internal/logger"
	"fmt"
)

// Prints a new admin token. Only the hash goes into the environment.
func main() {
	logger.Init("info", "development")

	raw, hash, err := auth.GenerateToken()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to generate token")
	}

	fmt.Println("Admin token (shown once, keep it safe):")
	fmt.Println("  " + raw)
	fmt.Println()
	fmt.Println("Set this in the server environment:")
	fmt.Printf("  %s=%s\n", env.EnvAdminTokenHash, hash)
}

/*
Dining hours service. Open, closed and limited status for campus dining halls.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
