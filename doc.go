/*
 * doc.go, part of gosnb.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package snb generates symmetry-breaking distortions of point defects in crystalline
solids, to help locating their low-energy configurations in electronic-structure
calculations.

	**goSNB Capabilities**

    Reads/writes VASP POSCAR files.

    Periodic (minimum-image) distances, distance matrices and the bulk bond length
	of a supercell.

    Selects the nearest neighbours of a defect, given either as an atom
	(interstitials, substitutions) or as a point (vacancies).

    Bond distortions: scales the distance between a defect and some of its
	neighbours by a factor.

    Rattling: random displacements of atoms that never bring two atoms closer
	than a minimum distance (within a bounded number of trials, the atoms for which
	none was found are reported).

    Applies distortion + rattle for a set of distortion magnitudes and for all the
	charge states of a set of defects, keeping track of which atoms were moved and
	by how much.

Structures are kept as a slice of Atoms, a v3.Matrix of cartesian coordinates (one
row per site) and a Lattice. Functions never modify the structures given to them.

Random numbers come from a source made for each call, from a seed in the options,
so results are reproducible and calls can run concurrently.
*/
package snb
