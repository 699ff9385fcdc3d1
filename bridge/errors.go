// This file is part of nova.
//
// nova is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nova is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nova.  If not, see <https://www.gnu.org/licenses/>.

package bridge

import "github.com/justinvassantachart/nova-sub000/errors"

const stopMessage = "execution stopped"

// ErrStopped is the distinguished sentinel raised from a step hook once the
// control region reports STOP, unwinding the executor.
var ErrStopped = errors.Errorf(stopMessage)

// IsStopped reports whether err is (or wraps, via the curated template
// match) ErrStopped.
func IsStopped(err error) bool {
	return errors.Is(err, stopMessage)
}
