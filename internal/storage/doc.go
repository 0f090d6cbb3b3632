/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package storage implements the durable key/value stores the recipe history is persisted in.
// The default store is an embedded SQLite database (<data dir>/aichef.sqlite) in WAL mode with
// meta/version tables and migrations. A plain JSON file store with transactional writes and
// timestamped backups is available as an alternative; the desktop UI can also use Fyne preferences.
// All stores treat a missing key as absence, never as an error.
package storage
